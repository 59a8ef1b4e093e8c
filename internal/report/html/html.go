// Copyright 2026 The filetrace Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package html implements an interactive, self-contained HTML sink for
// the traced directory tree: a collapsible, searchable file browser with
// light/dark theming, rendered through html/template for safe escaping.
package html

import (
	"html/template"
	"io"

	"github.com/kestrelcode/filetrace/internal/tree"
)

// Sink is a report.Sink that writes a standalone HTML document.
type Sink struct{}

// Render writes an interactive HTML visualization of root to w.
func (Sink) Render(root *tree.Node, w io.Writer) error {
	return pageTemplate.Execute(w, struct {
		Root *tree.Node
	}{Root: root})
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"sortedChildren": func(n *tree.Node) []*tree.Node { return n.SortedChildren() },
	"hasDigest":      func(n *tree.Node) bool { return len(n.Digest) > 0 },
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<title>File Access Visualization</title>
<style>
:root { --spacing-unit: 0.5rem; --primary-color: #0066cc; --border-color: #ddd; --text-color: #333; --bg-color: #fff; }
@media (prefers-color-scheme: dark) {
  :root { --primary-color: #4d94ff; --border-color: #444; --text-color: #eee; --bg-color: #222; }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: system-ui, -apple-system, sans-serif; background: var(--bg-color); color: var(--text-color); line-height: 1.5; }
.svg-icon { width: 16px; height: 16px; fill: currentColor; vertical-align: middle; }
.container { display: grid; grid-template-columns: minmax(250px, 1fr) 3fr; gap: var(--spacing-unit); padding: var(--spacing-unit); max-width: 1600px; margin: 0 auto; }
@media (max-width: 768px) { .container { grid-template-columns: 1fr; } }
h1 { color: var(--text-color); font-size: 1.5rem; margin-bottom: var(--spacing-unit); grid-column: 1 / -1; }
.search-container { position: sticky; top: 0; background: var(--bg-color); padding: var(--spacing-unit); z-index: 100; grid-column: 1 / -1; }
#search-box { width: 100%; padding: calc(var(--spacing-unit) * 0.75); font-size: 1rem; border: 2px solid var(--border-color); border-radius: 4px; background: var(--bg-color); color: var(--text-color); }
#search-box:focus { outline: none; border-color: var(--primary-color); box-shadow: 0 0 0 2px rgba(0,102,204,0.2); }
.directory-tree { font-family: 'SF Mono', Consolas, monospace; font-size: 0.9rem; }
.tree-node { display: flex; flex-direction: column; margin: calc(var(--spacing-unit) * 0.25) 0; transform-origin: top; transition: transform 0.3s ease, opacity 0.3s ease; }
.tree-node.hidden { display: none; }
.node-content { display: flex; align-items: center; padding: calc(var(--spacing-unit) * 0.5); border-radius: 4px; transition: background-color 0.2s; }
.node-content:hover { background-color: rgba(0,102,204,0.1); }
.file { color: var(--text-color); }
.file .name { font-weight: normal; }
.directory { color: var(--primary-color); cursor: pointer; }
.directory .name { font-weight: 600; }
.sequence { color: var(--primary-color); margin-left: var(--spacing-unit); font-weight: 600; opacity: 0.8; }
.thread-info { color: var(--text-color); margin-left: var(--spacing-unit); opacity: 0.7; }
.enrichment-info { color: var(--text-color); margin-left: var(--spacing-unit); opacity: 0.7; font-size: 0.85em; }
.folder-icon { margin-right: calc(var(--spacing-unit) * 0.5); transition: transform 0.2s; display: inline-flex; align-items: center; }
.file-icon { margin-right: calc(var(--spacing-unit) * 0.5); display: inline-flex; align-items: center; }
.children { margin-left: calc(var(--spacing-unit) * 2); border-left: 1px solid var(--border-color); padding-left: var(--spacing-unit); }
.collapsed .children { display: none; }
.collapsed .folder-icon { transform: rotate(-90deg); }
.search-match { background-color: rgba(255, 215, 0, 0.3); box-shadow: 0 0 0 2px rgba(255, 215, 0, 0.5); border-radius: 2px; }
</style>
<script>
const folderSvg = ` + "`" + `<svg class='svg-icon' viewBox='0 0 20 20'><path d='M2 4c0-1.1.9-2 2-2h4l2 2h6c1.1 0 2 .9 2 2v10c0 1.1-.9 2-2 2H4c-1.1 0-2-.9-2-2V4z'/></svg>` + "`" + `;
const fileSvg = ` + "`" + `<svg class='svg-icon' viewBox='0 0 20 20'><path d='M13 2H6C4.9 2 4 2.9 4 4v12c0 1.1.9 2 2 2h8c1.1 0 2-.9 2-2V7l-3-5zM13 8V3.5L17.5 8H13z'/></svg>` + "`" + `;

function toggleDirectory(element) {
    element.closest('.tree-node').classList.toggle('collapsed');
}

function filterFiles() {
    const searchText = document.getElementById('search-box').value.toLowerCase();
    const nodes = document.querySelectorAll('.tree-node');
    document.querySelectorAll('.search-match').forEach(el => el.classList.remove('search-match'));
    if (searchText === '') {
        nodes.forEach(node => node.classList.remove('hidden'));
        return;
    }
    nodes.forEach(node => node.classList.add('hidden'));
    nodes.forEach(node => {
        const nameElement = node.querySelector('.name');
        const name = nameElement.textContent.toLowerCase();
        if (name.includes(searchText)) {
            node.classList.remove('hidden');
            nameElement.classList.add('search-match');
            let parent = node.parentElement;
            while (parent) {
                if (parent.classList.contains('children')) {
                    parent.classList.remove('hidden');
                    const parentNode = parent.closest('.tree-node');
                    if (parentNode) {
                        parentNode.classList.remove('hidden');
                        parentNode.classList.remove('collapsed');
                    }
                }
                parent = parent.parentElement;
            }
        }
    });
}

document.addEventListener('DOMContentLoaded', function() {
    document.querySelectorAll('.directory').forEach(dir => {
        dir.addEventListener('click', function(e) {
            if (e.target.closest('.node-content')) {
                toggleDirectory(e.target);
            }
        });
    });
});
</script>
</head>
<body>
<div class='container'>
<h1>File Access Visualization</h1>
<div class='search-container'>
<input type='text' id='search-box' placeholder='Search files and processes...' onkeyup='filterFiles()'>
</div>
<div class='directory-tree'>
{{template "node" .Root}}
</div>
</div>
</body>
</html>
{{define "node"}}{{range sortedChildren .}}
<div class='tree-node{{if .IsFile}} file{{else}} directory{{end}}'>
  <div class='node-content'>
    {{if .IsFile}}<span class='file-icon'>{{template "fileicon"}}</span>{{else}}<span class='folder-icon' onclick='toggleDirectory(this)'>{{template "foldericon"}}</span>{{end}}
    <span class='name'>{{.Segment}}</span>
    {{if .IsFile}}
    <span class='sequence'>[{{.Sequence}}]</span>
    <span class='thread-info'>(Thread: {{.TID}} - {{.ThreadName}})</span>
    {{if .ContentType}}<span class='enrichment-info'>{{.ContentType}}</span>{{end}}
    {{if hasDigest .}}<span class='enrichment-info'>{{range $algo, $sum := .Digest}}{{$algo}}:{{$sum}} {{end}}</span>{{end}}
    {{end}}
  </div>
  {{if not .IsFile}}<div class='children'>{{template "node" .}}</div>{{end}}
</div>
{{end}}{{end}}
{{define "foldericon"}}<svg class='svg-icon' viewBox='0 0 20 20'><path d='M2 4c0-1.1.9-2 2-2h4l2 2h6c1.1 0 2 .9 2 2v10c0 1.1-.9 2-2 2H4c-1.1 0-2-.9-2-2V4z'/></svg>{{end}}
{{define "fileicon"}}<svg class='svg-icon' viewBox='0 0 20 20'><path d='M13 2H6C4.9 2 4 2.9 4 4v12c0 1.1.9 2 2 2h8c1.1 0 2-.9 2-2V7l-3-5zM13 8V3.5L17.5 8H13z'/></svg>{{end}}
`
