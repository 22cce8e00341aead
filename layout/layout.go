// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package layout implements the fixed-offset little-endian record codec.
// Accounts begin with an 8 bytes discriminator, instructions with a single byte.
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vechain/restake/restake"
)

// DiscriminatorLen is the size of an account discriminator.
const DiscriminatorLen = 8

var (
	ErrShortBuffer   = errors.New("layout: short buffer")
	ErrTrailingBytes = errors.New("layout: trailing bytes")
	ErrStringTooLong = errors.New("layout: string too long")
)

// DiscriminatorError is returned when a record starts with an unexpected tag.
type DiscriminatorError struct {
	Want, Got uint64
}

func (e *DiscriminatorError) Error() string {
	return fmt.Sprintf("layout: discriminator mismatch, want %d got %d", e.Want, e.Got)
}

// Encoder appends fields to a byte slice.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an encoder with the given capacity hint.
func NewEncoder(size int) *Encoder {
	return &Encoder{buf: make([]byte, 0, size)}
}

func (e *Encoder) U8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) U16(v uint16) *Encoder {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
	return e
}

func (e *Encoder) U64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) Bool(v bool) *Encoder {
	if v {
		return e.U8(1)
	}
	return e.U8(0)
}

func (e *Encoder) Pubkey(p restake.Pubkey) *Encoder {
	e.buf = append(e.buf, p[:]...)
	return e
}

// Reserved appends n zero bytes.
func (e *Encoder) Reserved(n int) *Encoder {
	for range n {
		e.buf = append(e.buf, 0)
	}
	return e
}

// String writes s into a fixed width field, prefixed by its length as u8.
// The field always occupies width+1 bytes.
func (e *Encoder) String(s string, width int) *Encoder {
	if len(s) > width || width > 255 {
		panic(ErrStringTooLong)
	}
	e.U8(uint8(len(s)))
	e.buf = append(e.buf, s...)
	return e.Reserved(width - len(s))
}

// Account writes an account discriminator.
func (e *Encoder) Account(disc uint64) *Encoder {
	return e.U64(disc)
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Decoder reads fields in order. The first failure sticks, and every later
// read returns the zero value, so callers check Finish once.
type Decoder struct {
	buf []byte
	off int
	err error
}

// NewDecoder creates a decoder over b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.buf)-d.off < n {
		d.err = ErrShortBuffer
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *Decoder) U8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) U16() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *Decoder) U64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *Decoder) Bool() bool {
	return d.U8() != 0
}

func (d *Decoder) Pubkey() (p restake.Pubkey) {
	b := d.take(restake.PubkeyLength)
	if b != nil {
		copy(p[:], b)
	}
	return
}

// Reserved skips n bytes.
func (d *Decoder) Reserved(n int) {
	d.take(n)
}

// String reads a field written by Encoder.String with the same width.
func (d *Decoder) String(width int) string {
	n := int(d.U8())
	b := d.take(width)
	if b == nil {
		return ""
	}
	if n > width {
		d.err = ErrStringTooLong
		return ""
	}
	return string(b[:n])
}

// Account reads the account discriminator and checks it.
func (d *Decoder) Account(want uint64) {
	got := d.U64()
	if d.err == nil && got != want {
		d.err = &DiscriminatorError{Want: want, Got: got}
	}
}

// Err returns the first decoding error.
func (d *Decoder) Err() error {
	return d.err
}

// Finish returns the first error, or ErrTrailingBytes if input remains.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.buf) {
		return ErrTrailingBytes
	}
	return nil
}

// PeekAccount returns the discriminator of an encoded account without decoding the rest.
func PeekAccount(data []byte) (uint64, bool) {
	if len(data) < DiscriminatorLen {
		return 0, false
	}
	return binary.LittleEndian.Uint64(data), true
}
