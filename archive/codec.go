package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/blogem/reqsink/models"
)

// Encode serializes rec with msgpack and streams it through a zstd encoder
func Encode(rec *models.CapturedRequest) ([]byte, error) {
	var buf bytes.Buffer

	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}

	if err := msgpack.NewEncoder(zw).Encode(rec); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress request: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode reverses Encode
func Decode(blob []byte) (*models.CapturedRequest, error) {
	zr, err := zstd.NewReader(bytes.NewReader(blob), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress request: %w", err)
	}

	var rec models.CapturedRequest
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to deserialize request: %w", err)
	}

	return &rec, nil
}
