// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyx

// Source is a pre-materialized form of a body's payload. When present, it
// is byte-for-byte what the body's stream would yield, and read operations
// may use it to short-circuit stream consumption.
//
// Callers must treat the returned slice as read-only.
type Source interface {
	Bytes() []byte
	Len() int
}

// BytesSource is a plain in-memory payload source.
type BytesSource []byte

func (s BytesSource) Bytes() []byte { return s }

func (s BytesSource) Len() int { return len(s) }

// Blob is an immutable named byte payload with an associated content type,
// usable as a body Source.
type Blob struct {
	data        []byte
	contentType string
}

// NewBlob copies data into an immutable blob.
func NewBlob(data []byte, contentType string) *Blob {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Blob{data: buf, contentType: contentType}
}

func (b *Blob) Bytes() []byte { return b.data }

func (b *Blob) Len() int { return len(b.data) }

// ContentType returns the blob's media type, which may be empty.
func (b *Blob) ContentType() string { return b.contentType }

// Body is a logical payload: a consumable ByteStream, an optional
// pre-materialized Source with the same contents, and an optional known
// byte length.
//
// A Body belongs to one logical consumer at a time; Clone it when two
// independent consumers must observe the same bytes. Except for the stream
// replacement performed by Clone, a Body is immutable, and its methods are
// not safe for concurrent use on the same Body.
type Body struct {
	stream *ByteStream
	source Source
	length int64
}

// NewBody wraps stream as a body with no source and unknown length.
func NewBody(stream *ByteStream) *Body {
	if stream == nil {
		panic("bodyx: nil stream")
	}
	return &Body{stream: stream, length: -1}
}

// NewBodyWithSource wraps stream together with a pre-materialized source
// and a known length. source may be nil; pass a negative length when it is
// unknown. The caller asserts that source matches the stream's contents.
func NewBodyWithSource(stream *ByteStream, source Source, length int64) *Body {
	if stream == nil {
		panic("bodyx: nil stream")
	}
	if length < 0 {
		length = -1
	}
	return &Body{stream: stream, source: source, length: length}
}

// Stream returns the body's current stream handle. After Clone it is the
// first tee branch.
func (b *Body) Stream() *ByteStream { return b.stream }

// Source returns the body's pre-materialized source, or nil.
func (b *Body) Source() Source { return b.source }

// Length returns the full payload size in bytes, when known.
func (b *Body) Length() (int64, bool) {
	if b.length < 0 {
		return 0, false
	}
	return b.length, true
}

// Clone duplicates the body so that two independent consumers observe the
// same logical byte sequence. The receiver's stream is replaced by one tee
// branch, the returned body wraps the other; source and length carry over
// verbatim (they describe content, not stream identity).
//
// Cloning a body whose stream has an active reader fails with ErrTeeLocked
// and mutates neither body. A body with no prior reads always clones
// cleanly.
func (b *Body) Clone() (*Body, error) {
	out1, out2, err := b.stream.Tee()
	if err != nil {
		return nil, err
	}
	b.stream = out1
	return &Body{stream: out2, source: b.source, length: b.length}, nil
}

// ByteSequenceAsBody turns raw bytes into a body: the stream yields exactly
// those bytes once, the source holds the same bytes (letting FullyRead skip
// stream traversal), and the length equals the byte count. The input is
// copied; later mutation of b does not affect the body.
func ByteSequenceAsBody(b []byte) *Body {
	buf := make([]byte, len(b))
	copy(buf, b)
	return sourceAsBody(BytesSource(buf))
}

// BlobAsBody turns a blob into a body whose stream yields the blob's bytes
// once and whose source is the blob itself.
func BlobAsBody(blob *Blob) *Body {
	if blob == nil {
		panic("bodyx: nil blob")
	}
	return sourceAsBody(blob)
}

func sourceAsBody(source Source) *Body {
	s := NewByteStream()
	if source.Len() > 0 {
		s.Push(source.Bytes())
	}
	s.Close()
	return &Body{stream: s, source: source, length: int64(source.Len())}
}

// BodyWithType pairs a body with the media type it was extracted with.
// Type is empty when no type is known.
type BodyWithType struct {
	Body *Body
	Type string
}

// ByteSequenceAsBodyWithType is ByteSequenceAsBody plus an associated media
// type.
func ByteSequenceAsBodyWithType(b []byte, contentType string) BodyWithType {
	return BodyWithType{Body: ByteSequenceAsBody(b), Type: contentType}
}
