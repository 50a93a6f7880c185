package main

import (
	"os"

	"github.com/karrick/godirwalk"
)

// walkDir enumerates every regular file under root. Directory walking is
// explicitly a collaborator's job, not the scanner's (spec §1) — it
// belongs here in cmd, never in pkg/eid or internal/eidglue.
func walkDir(root string) ([]string, error) {
	var paths []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			info, err := os.Lstat(path)
			if err != nil {
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			paths = append(paths, path)
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	return paths, err
}
