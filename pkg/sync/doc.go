/*
The sync package implements editsync's sync algorithm. It keeps a local mirror
directory and a project on the remote editing service in step.

There are two phases:
1) Bootstrap -- The mirror directory is wiped and every file in the remote
   project is downloaded into it. The names of the downloaded files form the
   Whitelist, which is fixed for the rest of the session.
2) Watch -- Raw file system notifications for the mirror are debounced per
   path, classified against the Whitelist and the restart sentinel, and
   dispatched one at a time. Updated files are pushed to the remote project,
   and touching the sentinel restarts the remote program.

The remote copy is always overwritten by the local one. Events are dispatched
serially so that the most recent local edit is the last one pushed.
*/
package sync
