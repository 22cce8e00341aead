// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package instruction defines the instructions accepted by the programs and
// their wire encoding: a one byte kind followed by fixed layout arguments.
package instruction

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vechain/restake/errcode"
	"github.com/vechain/restake/layout"
	"github.com/vechain/restake/restake"
)

// Instruction is a decoded instruction.
type Instruction interface {
	Kind() Kind
	fields(f fieldVisitor)
}

// Envelope is an encoded instruction with the signers that authorized it.
type Envelope struct {
	Data    hexutil.Bytes    `json:"data"`
	Signers []restake.Pubkey `json:"signers"`
}

// NewEnvelope encodes ins for the given signers.
func NewEnvelope(ins Instruction, signers ...restake.Pubkey) (*Envelope, error) {
	data, err := Encode(ins)
	if err != nil {
		return nil, err
	}
	return &Envelope{Data: data, Signers: signers}, nil
}

// Signed reports whether addr is among the signers.
func (e *Envelope) Signed(addr restake.Pubkey) bool {
	for _, s := range e.Signers {
		if s == addr {
			return true
		}
	}
	return false
}

// fieldVisitor walks the arguments of an instruction in layout order. The
// same walk encodes and decodes.
type fieldVisitor interface {
	pubkey(p *restake.Pubkey)
	u64(v *uint64)
	u16(v *uint16)
	u8(v *uint8)
	boolean(v *bool)
	optU16(v **uint16)
	str(s *string, width int)
}

type encoder struct {
	e   *layout.Encoder
	err error
}

func (w *encoder) pubkey(p *restake.Pubkey) { w.e.Pubkey(*p) }
func (w *encoder) u64(v *uint64)            { w.e.U64(*v) }
func (w *encoder) u16(v *uint16)            { w.e.U16(*v) }
func (w *encoder) u8(v *uint8)              { w.e.U8(*v) }
func (w *encoder) boolean(v *bool)          { w.e.Bool(*v) }

func (w *encoder) optU16(v **uint16) {
	if *v == nil {
		w.e.Bool(false).U16(0)
		return
	}
	w.e.Bool(true).U16(**v)
}

func (w *encoder) str(s *string, width int) {
	if len(*s) > width {
		if w.err == nil {
			w.err = errors.Wrapf(layout.ErrStringTooLong, "%d bytes, max %d", len(*s), width)
		}
		w.e.String("", width)
		return
	}
	w.e.String(*s, width)
}

type decoder struct {
	d *layout.Decoder
}

func (r *decoder) pubkey(p *restake.Pubkey) { *p = r.d.Pubkey() }
func (r *decoder) u64(v *uint64)            { *v = r.d.U64() }
func (r *decoder) u16(v *uint16)            { *v = r.d.U16() }
func (r *decoder) u8(v *uint8)              { *v = r.d.U8() }
func (r *decoder) boolean(v *bool)          { *v = r.d.Bool() }
func (r *decoder) str(s *string, width int) { *s = r.d.String(width) }

func (r *decoder) optU16(v **uint16) {
	present := r.d.Bool()
	x := r.d.U16()
	if present {
		*v = &x
	} else {
		*v = nil
	}
}

// Encode serializes ins.
func Encode(ins Instruction) ([]byte, error) {
	w := &encoder{e: layout.NewEncoder(128)}
	w.e.U8(uint8(ins.Kind()))
	ins.fields(w)
	if w.err != nil {
		return nil, w.err
	}
	return w.e.Bytes(), nil
}

// MustEncode is like Encode but panics on error.
func MustEncode(ins Instruction) []byte {
	data, err := Encode(ins)
	if err != nil {
		panic(err)
	}
	return data
}

// Decode parses an encoded instruction. Malformed input is reported as
// InvalidInstructionData.
func Decode(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(errcode.InvalidInstructionData, "empty instruction")
	}
	k := Kind(data[0])
	ctor, ok := registry[k]
	if !ok {
		return nil, errors.Wrapf(errcode.InvalidInstructionData, "unknown kind %d", data[0])
	}
	ins := ctor()
	d := layout.NewDecoder(data[1:])
	ins.fields(&decoder{d})
	if err := d.Finish(); err != nil {
		return nil, errors.Wrapf(errcode.InvalidInstructionData, "%v: %v", k, err)
	}
	return ins, nil
}
