// Copyright 2025 ConfigBundle Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tree renders a directory subtree for the ls view.
package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

var (
	dirColor      = color.New(color.FgBlue, color.Bold)
	backlinkColor = color.New(color.FgHiBlack)
)

// Node is one entry of a scanned subtree.
type Node struct {
	Name     string
	IsDir    bool
	Children []*Node
}

// Build scans root into a Node tree. Entries for which ignored returns
// true are skipped; ignored may be nil. Symlinked directories are not
// followed.
func Build(root string, ignored func(string) bool) (*Node, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return nil, err
	}
	node := &Node{Name: filepath.Base(root), IsDir: info.IsDir()}
	if !node.IsDir {
		return node, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if ignored != nil && ignored(path) {
			continue
		}
		if e.IsDir() {
			child, err := Build(path, ignored)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
			continue
		}
		node.Children = append(node.Children, &Node{Name: e.Name()})
	}
	return node, nil
}

// Render returns the subtree as plain text lines.
func Render(n *Node) []string {
	var lines []string
	walk(n, func(prefix string, node *Node) {
		lines = append(lines, prefix+node.Name)
	})
	return lines
}

// Fprint writes the subtree to w, directories highlighted and backlink
// entries dimmed.
func Fprint(w io.Writer, n *Node) {
	walk(n, func(prefix string, node *Node) {
		name := node.Name
		switch {
		case node.IsDir:
			name = dirColor.Sprint(name)
		case strings.HasSuffix(name, ".link"):
			name = backlinkColor.Sprint(name)
		}
		fmt.Fprintln(w, prefix+name)
	})
}

func walk(n *Node, emit func(prefix string, node *Node)) {
	emit("", n)

	var render func(n *Node, indent string)
	render = func(n *Node, indent string) {
		for i, child := range n.Children {
			connector, childIndent := "├── ", "│   "
			if i == len(n.Children)-1 {
				connector, childIndent = "└── ", "    "
			}
			emit(indent+connector, child)
			render(child, indent+childIndent)
		}
	}
	render(n, "")
}
