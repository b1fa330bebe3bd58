package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/axiomhq/axiom-go/axiom"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Encoding is the content encoding applied to ingest payloads
type Encoding string

const (
	EncodingIdentity Encoding = "identity"
	EncodingGzip     Encoding = "gzip"
	EncodingZstd     Encoding = "zstd"
)

// Encodings lists the accepted encoding names
var Encodings = []Encoding{EncodingIdentity, EncodingGzip, EncodingZstd}

// ParseEncoding converts a name to an Encoding. The empty string means identity.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.ToLower(strings.TrimSpace(s))) {
	case "", EncodingIdentity:
		return EncodingIdentity, nil
	case EncodingGzip:
		return EncodingGzip, nil
	case EncodingZstd:
		return EncodingZstd, nil
	default:
		return "", fmt.Errorf("unknown compression %q (want identity, gzip or zstd)", s)
	}
}

func (e Encoding) contentEncoding() axiom.ContentEncoding {
	switch e {
	case EncodingGzip:
		return axiom.Gzip
	case EncodingZstd:
		return axiom.Zstd
	default:
		return axiom.Identity
	}
}

// payloadEncoder compresses request bodies. The zstd encoder is created once
// and reused; EncodeAll is safe for concurrent use.
type payloadEncoder struct {
	enc  Encoding
	zstd *zstd.Encoder
}

func newPayloadEncoder(enc Encoding) (*payloadEncoder, error) {
	p := &payloadEncoder{enc: enc}
	if enc == EncodingZstd {
		z, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		p.zstd = z
	}
	return p, nil
}

func (p *payloadEncoder) encode(payload []byte) ([]byte, error) {
	switch p.enc {
	case EncodingGzip:
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(payload); err != nil {
			return nil, err
		}
		if err := gz.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case EncodingZstd:
		return p.zstd.EncodeAll(payload, make([]byte, 0, len(payload))), nil
	default:
		return payload, nil
	}
}

func (p *payloadEncoder) close() error {
	if p.zstd != nil {
		return p.zstd.Close()
	}
	return nil
}

// marshalEvents joins already-encoded events into a JSON array
func marshalEvents(events []json.RawMessage) []byte {
	size := 2
	for _, ev := range events {
		size += len(ev) + 1
	}
	buf := make([]byte, 0, size)
	buf = append(buf, '[')
	for i, ev := range events {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, ev...)
	}
	return append(buf, ']')
}
