// Package indexcache serializes and deserializes a document's index
// artifact (chunk texts plus, when embeddings succeeded, the embedding
// matrix) and fronts a durable Redis layer with a warm in-process cache.
package indexcache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"sdch/pkg/chunker"
	"sdch/pkg/embedding"
)

var wireMagic = [4]byte{'S', 'D', 'C', 'H'}

const wireVersion = 1

type embedderCode byte

const (
	embedderNone     embedderCode = 0
	embedderPrimary  embedderCode = 1
	embedderFallback embedderCode = 2
)

// Artifact is the per-document bundle cached across queries: ordered chunk
// texts and, when embeddings succeeded at build time, the embedding
// matrix. BM25 statistics are not serialized — they are a pure function of
// the chunk texts and are cheaply rebuilt by the caller after load.
type Artifact struct {
	Chunks     []chunker.Chunk
	Embedder   embedding.Identity // "" if embeddings were unavailable at build time
	Dimension  int
	Embeddings [][]float32 // len == len(Chunks) when Embedder != ""
}

func codeFor(id embedding.Identity) embedderCode {
	switch id {
	case embedding.IdentityPrimary:
		return embedderPrimary
	case embedding.IdentityFallback:
		return embedderFallback
	default:
		return embedderNone
	}
}

func identityFor(code embedderCode) embedding.Identity {
	switch code {
	case embedderPrimary:
		return embedding.IdentityPrimary
	case embedderFallback:
		return embedding.IdentityFallback
	default:
		return ""
	}
}

// Serialize produces the opaque artifact blob: 4-byte magic, 1-byte
// version, embedder id, dimension, chunk count, then the chunk records and
// raw embedding matrix, matching the persisted-state wire format.
func Serialize(a Artifact) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(wireMagic[:])
	buf.WriteByte(wireVersion)
	buf.WriteByte(byte(codeFor(a.Embedder)))

	if err := binary.Write(buf, binary.LittleEndian, int32(a.Dimension)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, int32(len(a.Chunks))); err != nil {
		return nil, err
	}

	for _, c := range a.Chunks {
		if err := writeChunk(buf, c); err != nil {
			return nil, err
		}
	}

	if a.Embedder != "" {
		for _, vec := range a.Embeddings {
			for _, f := range vec {
				if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
					return nil, err
				}
			}
		}
	}

	return buf.Bytes(), nil
}

func writeChunk(buf *bytes.Buffer, c chunker.Chunk) error {
	if err := binary.Write(buf, binary.LittleEndian, int32(c.Index)); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, int32(c.TokenCount)); err != nil {
		return err
	}
	if err := writeString(buf, c.SectionHint); err != nil {
		return err
	}
	return writeString(buf, c.Text)
}

func writeString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

// Deserialize parses a blob produced by Serialize. A bad magic, unsupported
// version, or truncated body is returned as an error; callers treat this
// identically to a cache miss and rebuild rather than crash.
func Deserialize(data []byte) (Artifact, error) {
	r := bytes.NewReader(data)

	var gotMagic [4]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return Artifact{}, fmt.Errorf("indexcache: truncated header: %w", err)
	}
	if gotMagic != wireMagic {
		return Artifact{}, fmt.Errorf("indexcache: bad magic")
	}

	version, err := r.ReadByte()
	if err != nil {
		return Artifact{}, err
	}
	if version != wireVersion {
		return Artifact{}, fmt.Errorf("indexcache: unsupported version %d", version)
	}

	embedderByte, err := r.ReadByte()
	if err != nil {
		return Artifact{}, err
	}

	var dimension, n int32
	if err := binary.Read(r, binary.LittleEndian, &dimension); err != nil {
		return Artifact{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return Artifact{}, err
	}

	chunks := make([]chunker.Chunk, n)
	for i := range chunks {
		c, err := readChunk(r)
		if err != nil {
			return Artifact{}, err
		}
		chunks[i] = c
	}

	identity := identityFor(embedderCode(embedderByte))

	var embeddings [][]float32
	if identity != "" {
		embeddings = make([][]float32, n)
		for i := range embeddings {
			vec := make([]float32, dimension)
			for j := range vec {
				if err := binary.Read(r, binary.LittleEndian, &vec[j]); err != nil {
					return Artifact{}, err
				}
			}
			embeddings[i] = vec
		}
	}

	return Artifact{Chunks: chunks, Embedder: identity, Dimension: int(dimension), Embeddings: embeddings}, nil
}

func readChunk(r *bytes.Reader) (chunker.Chunk, error) {
	var index, tokenCount int32
	if err := binary.Read(r, binary.LittleEndian, &index); err != nil {
		return chunker.Chunk{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &tokenCount); err != nil {
		return chunker.Chunk{}, err
	}
	hint, err := readString(r)
	if err != nil {
		return chunker.Chunk{}, err
	}
	text, err := readString(r)
	if err != nil {
		return chunker.Chunk{}, err
	}
	return chunker.Chunk{Index: int(index), TokenCount: int(tokenCount), SectionHint: hint, Text: text}, nil
}

func readString(r *bytes.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
