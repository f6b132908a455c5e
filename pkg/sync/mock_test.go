package sync

import (
	"fmt"
	goSync "sync"
)

type pushCall struct {
	project, basename, contents string
}

type mockRemote struct {
	files       map[string][]string
	contents    map[string]string
	listErr     error
	fetchErr    error
	pushErr     error
	restartErr  error
	onPush      func(pushCall)
	lock        goSync.Mutex
	pushes      []pushCall
	restarts    []string
	fetchedFrom []string
}

func (r *mockRemote) ListFiles(project string) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	files, ok := r.files[project]
	if !ok {
		return nil, fmt.Errorf("no such project: %s", project)
	}
	return files, nil
}

func (r *mockRemote) FetchFile(project, basename string) (string, error) {
	r.lock.Lock()
	r.fetchedFrom = append(r.fetchedFrom, project)
	r.lock.Unlock()

	if r.fetchErr != nil {
		return "", r.fetchErr
	}
	return r.contents[basename], nil
}

func (r *mockRemote) PushFile(project, basename, contents string) error {
	call := pushCall{project, basename, contents}
	r.lock.Lock()
	r.pushes = append(r.pushes, call)
	r.lock.Unlock()

	if r.onPush != nil {
		r.onPush(call)
	}
	return r.pushErr
}

func (r *mockRemote) Restart(project string) error {
	r.lock.Lock()
	r.restarts = append(r.restarts, project)
	r.lock.Unlock()
	return r.restartErr
}

func (r *mockRemote) getPushes() []pushCall {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]pushCall(nil), r.pushes...)
}
