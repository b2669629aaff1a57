// Package viz рисует граф изменений документа комнаты.
package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/iudanet/docsync/internal/document"
)

// Format формат вывода графа
type Format = graphviz.Format

const (
	SVG Format = graphviz.SVG
	DOT Format = graphviz.XDOT
)

// maxLabelText ограничение длины текста в подписи узла
const maxLabelText = 40

// Label подпись узла: короткий hash, actor@seq и текст на момент изменения
func Label(rev document.Revision) string {
	text := []rune(rev.Text)
	if len(text) > maxLabelText {
		text = append(text[:maxLabelText], '…')
	}
	encoded, _ := json.Marshal(string(text))

	hash := rev.Hash
	if len(hash) > 8 {
		hash = hash[:8]
	}
	actor := rev.Actor
	if len(actor) > 8 {
		actor = actor[:8]
	}
	return fmt.Sprintf("%s %s@%d %s", hash, actor, rev.Seq, encoded)
}

// Render строит граф по истории и пишет его в w в формате format.
// Ребро идет от зависимости к изменению.
func Render(w io.Writer, revs []document.Revision, format Format) error {
	g := graphviz.New()
	defer func() { _ = g.Close() }()

	graph, err := g.Graph()
	if err != nil {
		return fmt.Errorf("failed to setup graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	nodes := make(map[string]*cgraph.Node, len(revs))
	var edges int
	for _, rev := range revs {
		n, err := graph.CreateNode(rev.Hash)
		if err != nil {
			return fmt.Errorf("failed to create node: %w", err)
		}
		n.SetLabel(Label(rev))
		nodes[rev.Hash] = n

		for _, dep := range rev.Deps {
			parent, ok := nodes[dep]
			if !ok {
				// зависимость вне переданной истории
				continue
			}
			edges++
			if _, err := graph.CreateEdge(strconv.Itoa(edges), parent, n); err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
		}
	}

	if err := g.Render(graph, format, w); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}

// RenderFile рендерит граф в SVG файл по пути path
func RenderFile(revs []document.Revision, path string) error {
	var buff bytes.Buffer
	if err := Render(&buff, revs, SVG); err != nil {
		return err
	}
	if err := os.WriteFile(path, buff.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
