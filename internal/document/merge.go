package document

import (
	"bytes"
	"fmt"

	"github.com/automerge/automerge-go"
)

const hashSize = len(automerge.ChangeHash{})

func encodeHeads(heads []automerge.ChangeHash) []byte {
	out := make([]byte, 0, len(heads)*hashSize)
	for _, h := range heads {
		out = append(out, h[:]...)
	}
	return out
}

func decodeHeads(raw []byte) ([]automerge.ChangeHash, error) {
	if len(raw)%hashSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidStateVector, len(raw))
	}
	heads := make([]automerge.ChangeHash, 0, len(raw)/hashSize)
	for off := 0; off < len(raw); off += hashSize {
		var h automerge.ChangeHash
		copy(h[:], raw[off:off+hashSize])
		heads = append(heads, h)
	}
	return heads, nil
}

func concatChanges(changes []*automerge.Change) []byte {
	var buf bytes.Buffer
	for _, ch := range changes {
		buf.Write(ch.Save())
	}
	return buf.Bytes()
}

// MergeUpdates сливает несколько бинарных обновлений в одно.
// Изменения дедуплицируются по hash, порядок первого появления сохраняется.
// Каждое изменение сохраняет своего actor и seq, поэтому результат
// применяется идемпотентно. Пустой вход дает пустой результат.
func MergeUpdates(payloads [][]byte) ([]byte, error) {
	seen := make(map[automerge.ChangeHash]struct{})
	var merged []*automerge.Change

	for i, p := range payloads {
		if len(p) == 0 {
			continue
		}
		changes, err := automerge.LoadChanges(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load changes from payload %d: %w", i, err)
		}
		for _, ch := range changes {
			if _, ok := seen[ch.Hash()]; ok {
				continue
			}
			seen[ch.Hash()] = struct{}{}
			merged = append(merged, ch)
		}
	}

	out := concatChanges(merged)
	if out == nil {
		return []byte{}, nil
	}
	return out, nil
}
