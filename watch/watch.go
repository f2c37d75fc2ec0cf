// Package watch invalidates a translate.Cache entry when its backing file changes on disk.
package watch

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lvlvllvlvllvlvl/stattranslate/translate"
)

// ReturnData is sent on the channel returned by Watch every time something worth reporting
// happens: a file changed and was invalidated, or the watcher itself failed.
type ReturnData struct {
	Type    ReturnType
	Path    string //Logical path that was invalidated, set on WR_Invalidated
	Err     error  //Set on WR_Error
	Message string //Set on WR_Message
}

type ReturnType int

//goland:noinspection GoSnakeCaseUsage
const (
	WR_Message      ReturnType = iota //An informative message is being sent
	WR_Invalidated                    //A file changed and its cache entry was dropped
	WR_Error                          //The watch encountered an error; if setup failed, the channel is closed next
	WR_ClosedOut                      //The watch has stopped; no further values will arrive
)

// Watch observes dir for writes/creates to translation-file extensions and invalidates the
// corresponding logical entry in c on every change, debounced by timeoutWatch so a burst of
// writes to the same file (common with editors that write-then-rename) collapses to one
// invalidation. It runs in its own goroutine and returns immediately.
func Watch(c *translate.Cache, dir string, extensions []string) <-chan ReturnData {
	ret := make(chan ReturnData, 10)
	go runWatch(c, dir, extensions, ret)
	return ret
}

const timeoutWatch = time.Millisecond * 100

func runWatch(c *translate.Cache, dir string, extensions []string, ret chan<- ReturnData) {
	sendMessage := func(message string) {
		ret <- ReturnData{Type: WR_Message, Message: message}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		ret <- ReturnData{Type: WR_Error, Err: err}
		close(ret)
		return
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		ret <- ReturnData{Type: WR_Error, Err: err}
		close(ret)
		return
	}

	//Keeps a list of file changes that have happened within the last timeoutWatch. These are
	//cancelled if a duplicate event arrives within the window, so only the last of a burst fires.
	recentWatches := make(map[string]*bool)
	var recentWatchesMutex sync.Mutex

	sendMessage("watching " + dir)
	for event := range watcher.Events {
		fName := strings.ReplaceAll(event.Name, "\\", "/")
		if !strings.HasPrefix(fName, dir) {
			continue
		}
		logical := strings.TrimPrefix(fName[len(dir):], "/")
		if !event.Has(fsnotify.Write | fsnotify.Create) {
			continue
		}
		if !hasRelevantExtension(logical, extensions) {
			continue
		}

		go debounceAndInvalidate(c, logical, event.String(), recentWatches, &recentWatchesMutex, ret)
	}

	//watcher.Events closed: the watcher itself was closed, which is only reachable if the caller
	//leaked this goroutine's watcher past its lifetime.
	ret <- ReturnData{Type: WR_Error, Err: errors.New("watcher event channel closed")}
	ret <- ReturnData{Type: WR_ClosedOut}
	close(ret)
}

func debounceAndInvalidate(c *translate.Cache, logical, eventKey string, recentWatches map[string]*bool, mu *sync.Mutex, ret chan<- ReturnData) {
	mu.Lock()
	if b, exists := recentWatches[eventKey]; exists {
		*b = true
	}
	isCancelled := false
	recentWatches[eventKey] = &isCancelled
	mu.Unlock()

	time.Sleep(timeoutWatch)

	mu.Lock()
	if isCancelled {
		mu.Unlock()
		return
	}
	delete(recentWatches, eventKey)
	mu.Unlock()

	c.Invalidate(logical)
	ret <- ReturnData{Type: WR_Invalidated, Path: logical, Message: fmt.Sprintf("%s: invalidated", logical)}
}

func hasRelevantExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
