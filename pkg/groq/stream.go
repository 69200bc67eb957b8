package groq

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	dataPrefix = []byte("data:")
	doneMarker = []byte("[DONE]")
)

// ChatStream reads the server-sent events of a streaming completion.
// It is not safe for concurrent use and cannot be restarted.
type ChatStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	done   bool
}

// Recv returns the next chunk. It returns io.EOF once the server sent
// `data: [DONE]`. A body that ends before that marker is a TransportError.
func (s *ChatStream) Recv() (StreamChunk, error) {
	if s.done {
		return StreamChunk{}, io.EOF
	}

	for {
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			s.done = true
			return StreamChunk{}, &TransportError{Op: "read stream", Err: err}
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == ':' {
			continue
		}
		if !bytes.HasPrefix(line, dataPrefix) {
			// event:, id: and retry: fields carry nothing we use.
			continue
		}

		payload := bytes.TrimSpace(line[len(dataPrefix):])
		if bytes.Equal(payload, doneMarker) {
			s.done = true
			return StreamChunk{}, io.EOF
		}

		var env errorEnvelope
		if err := json.Unmarshal(payload, &env); err == nil && env.Error.Message != "" {
			s.done = true
			return StreamChunk{}, &APIError{
				StatusCode: 200,
				Type:       env.Error.Type,
				Code:       env.Error.Code,
				Message:    env.Error.Message,
			}
		}

		var chunk StreamChunk
		if err := json.Unmarshal(payload, &chunk); err != nil {
			s.done = true
			return StreamChunk{}, fmt.Errorf("groq: failed to decode stream chunk: %w", err)
		}
		return chunk, nil
	}
}

// Close releases the underlying connection.
func (s *ChatStream) Close() error {
	s.done = true
	return s.body.Close()
}

func (s *ChatStream) readLine() ([]byte, error) {
	var line []byte
	for {
		part, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			return nil, err
		}
		line = append(line, part...)
		if len(line) > maxLineSize {
			return nil, fmt.Errorf("stream line exceeds %d bytes", maxLineSize)
		}
		if !isPrefix {
			return line, nil
		}
	}
}

// Text concatenates the delta content of every choice in the chunk.
func (c StreamChunk) Text() string {
	if len(c.Choices) == 1 {
		return c.Choices[0].Delta.Content
	}
	var b bytes.Buffer
	for _, choice := range c.Choices {
		b.WriteString(choice.Delta.Content)
	}
	return b.String()
}
