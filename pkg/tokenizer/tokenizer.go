// Package tokenizer exposes deterministic, thread-safe token counting and
// token-bounded slicing against a fixed BPE vocabulary.
package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the BPE scheme used for every count/slice call. cl100k_base
// matches the vocabulary used by contemporary large models.
const Encoding = "cl100k_base"

var (
	once sync.Once
	enc  *tiktoken.Tiktoken
	initErr error
)

func encoder() (*tiktoken.Tiktoken, error) {
	once.Do(func() {
		enc, initErr = tiktoken.GetEncoding(Encoding)
	})
	return enc, initErr
}

// Count returns the exact token count of text under the fixed vocabulary.
// It is a pure function of text and the tokenizer identity: same input,
// same output, from any goroutine.
func Count(text string) (int, error) {
	e, err := encoder()
	if err != nil {
		return 0, err
	}
	return len(e.Encode(text, nil, nil)), nil
}

// Slice returns the longest prefix of text whose token count is <= maxTokens,
// without ever splitting a token. It operates on token boundaries, never on
// byte boundaries, so callers never have to guess a byte offset.
func Slice(text string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		return "", nil
	}
	e, err := encoder()
	if err != nil {
		return "", err
	}
	tokens := e.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, nil
	}
	return e.Decode(tokens[:maxTokens]), nil
}
