package config

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidkik/editsync/pkg/config"
	"github.com/sidkik/editsync/pkg/errors"
)

func TestPromptUser(t *testing.T) {
	tests := []struct {
		name                                                 string
		helpString, prompt, defaultAnswer, currAnswer, stdin string
		expPrompt, expResult                                 string
	}{
		{
			name:       "No default or current answer",
			helpString: "explanation",
			prompt:     "prompt",
			stdin:      "http://localhost:8080\n",
			expPrompt: "explanation\n" +
				"prompt:\n" +
				"Please enter manually: \n",
			expResult: "http://localhost:8080",
		},
		{
			name:          "Chose default answer",
			helpString:    "explanation",
			prompt:        "prompt",
			defaultAnswer: "250ms",
			stdin:         "1\n",
			expPrompt: "explanation\n" +
				"prompt:\n" +
				"\n" +
				"\t1. 250ms (recommended)\n" +
				"\t2. (Enter manually)\n" +
				"\n" +
				"Please choose one [1-2]: \n",
			expResult: "250ms",
		},
		{
			name:          "Empty response picks the first option",
			helpString:    "help",
			prompt:        "prompt",
			defaultAnswer: "project",
			currAnswer:    "/home/dev/mirror",
			stdin:         "\n",
			expPrompt: "help\n" +
				"prompt:\n" +
				"\n" +
				"\t1. project (recommended)\n" +
				"\t2. /home/dev/mirror\n" +
				"\t3. (Enter manually)\n" +
				"\n" +
				"Please choose one [1-3]: \n",
			expResult: "project",
		},
		{
			name:          "Chose current answer",
			helpString:    "help",
			prompt:        "prompt",
			defaultAnswer: "project",
			currAnswer:    "/home/dev/mirror",
			stdin:         "2\n",
			expPrompt: "help\n" +
				"prompt:\n" +
				"\n" +
				"\t1. project (recommended)\n" +
				"\t2. /home/dev/mirror\n" +
				"\t3. (Enter manually)\n" +
				"\n" +
				"Please choose one [1-3]: \n",
			expResult: "/home/dev/mirror",
		},
		{
			name:          "Invalid choice then enter manually",
			helpString:    "help",
			prompt:        "prompt",
			defaultAnswer: "project",
			stdin:         "7\n2\nsrc\n",
			expPrompt: "help\n" +
				"prompt:\n" +
				"\n" +
				"\t1. project (recommended)\n" +
				"\t2. (Enter manually)\n" +
				"\n" +
				"Please choose one [1-2]: " +
				"Please choose one [1-2]: " +
				"Please enter manually: \n",
			expResult: "src",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			stdout = out

			res, err := promptUser(bufio.NewReader(strings.NewReader(test.stdin)),
				test.helpString, test.prompt, test.defaultAnswer, test.currAnswer)
			assert.NoError(t, err)
			assert.Equal(t, test.expResult, res)
			assert.Equal(t, test.expPrompt, out.String())
		})
	}
}

func TestSetupConfig(t *testing.T) {
	var written config.User
	writeUserConfig = func(cfg config.User) error {
		written = cfg
		return nil
	}
	getConfigPath = func() (string, error) {
		return "/home/dev/.editsync.yaml", nil
	}
	parseUserConfig = func() (config.User, error) {
		return config.User{}, errors.FileNotFound{Path: "/home/dev/.editsync.yaml"}
	}

	// The invalid address is asked for again.
	stdin = strings.NewReader("ftp://remote\n" +
		"http://remote:8080\n" +
		"\n" +
		"2\n" +
		"1s\n")
	out := &bytes.Buffer{}
	stdout = out

	assert.NoError(t, SetupConfig(config.User{}))
	assert.Equal(t, config.User{
		URL:       "http://remote:8080",
		MirrorDir: config.DefaultMirrorDir,
		Debounce:  "1s",
	}, written)
	assert.Contains(t, out.String(), `"ftp://remote" isn't a valid address`)
	assert.Contains(t, out.String(), "Wrote config to /home/dev/.editsync.yaml\n")
}

func TestSetupConfigFromFlags(t *testing.T) {
	var written config.User
	writeUserConfig = func(cfg config.User) error {
		written = cfg
		return nil
	}
	getConfigPath = func() (string, error) {
		return "/home/dev/.editsync.yaml", nil
	}
	parseUserConfig = func() (config.User, error) {
		return config.User{}, nil
	}
	stdin = strings.NewReader("")
	stdout = &bytes.Buffer{}

	cliOpts := config.User{
		URL:       "https://editor.example.com",
		MirrorDir: "/tmp/mirror",
		Debounce:  "100ms",
	}
	assert.NoError(t, SetupConfig(cliOpts))
	assert.Equal(t, cliOpts, written)

	assert.Error(t, SetupConfig(config.User{URL: "not a url"}))
	assert.Error(t, SetupConfig(config.User{URL: "http://remote", Debounce: "-1s"}))
}

func TestValidation(t *testing.T) {
	_, ok := urlValidationFn("http://localhost:8080")
	assert.True(t, ok)

	msg, ok := urlValidationFn("localhost")
	assert.False(t, ok)
	assert.Contains(t, msg, "localhost")

	_, ok = debounceValidationFn("250ms")
	assert.True(t, ok)

	_, ok = debounceValidationFn("0s")
	assert.False(t, ok)
}
