package emitter

import "github.com/wippyai/decimal-jit/emitter/internal/binary"

// Module binary section ids.
const (
	secCustom   = 0x00
	secType     = 0x01
	secFunction = 0x03
	secGlobal   = 0x06
	secExport   = 0x07
	secCode     = 0x0A
)

const (
	moduleMagic   = 0x6D736100 // \0asm
	moduleVersion = 1
)

// FramesSectionName is the custom section carrying the verification frame
// table.
const FramesSectionName = "frames"

// encode lays out the finished module: header, one type, one function, the
// deduplicated constant pool as immutable globals, one export, the code
// body, then the frame table and name custom sections.
func (e *Emitter) encode() []byte {
	w := binary.NewWriter()
	w.WriteU32LE(moduleMagic)
	w.WriteU32LE(moduleVersion)

	sec := binary.NewWriter()
	sec.WriteU32(1)
	sec.Byte(funcTypeByte)
	sec.WriteU32(uint32(len(e.params)))
	for _, p := range e.params {
		sec.Byte(byte(p))
	}
	sec.WriteU32(uint32(len(e.results)))
	for _, r := range e.results {
		sec.Byte(byte(r))
	}
	writeSection(w, secType, sec.Bytes())

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(0)
	writeSection(w, secFunction, sec.Bytes())

	if len(e.consts) > 0 {
		sec = binary.NewWriter()
		sec.WriteU32(uint32(len(e.consts)))
		for _, v := range e.consts {
			sec.Byte(byte(ValI64))
			sec.Byte(globalImmut)
			sec.Byte(opI64Const)
			sec.WriteS64(v)
			sec.Byte(opEnd)
		}
		writeSection(w, secGlobal, sec.Bytes())
	}

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteName(e.refs[e.export])
	sec.Byte(exportKindFun)
	sec.WriteU32(0)
	writeSection(w, secExport, sec.Bytes())

	body := binary.NewWriter()
	runs := localRuns(e.decl[len(e.params):])
	body.WriteU32(uint32(len(runs)))
	for _, r := range runs {
		body.WriteU32(r.count)
		body.Byte(byte(r.typ))
	}
	body.WriteBytes(e.code.Bytes())
	body.Byte(opEnd)

	sec = binary.NewWriter()
	sec.WriteU32(1)
	sec.WriteU32(uint32(body.Len()))
	sec.WriteBytes(body.Bytes())
	writeSection(w, secCode, sec.Bytes())

	sec = binary.NewWriter()
	sec.WriteName(FramesSectionName)
	sec.WriteU32(uint32(len(e.frames)))
	for _, f := range e.frames {
		sec.WriteU32(uint32(f.Offset))
		sec.WriteU32(uint32(len(f.Locals)))
		for _, s := range f.Locals {
			writeSlot(sec, s)
		}
		sec.WriteU32(uint32(len(f.Stack)))
		for _, s := range f.Stack {
			writeSlot(sec, s)
		}
	}
	writeSection(w, secCustom, sec.Bytes())

	sub := binary.NewWriter()
	sub.WriteU32(1)
	sub.WriteU32(0)
	sub.WriteName(e.refs[e.export])

	sec = binary.NewWriter()
	sec.WriteName("name")
	sec.Byte(1) // function name subsection
	sec.WriteU32(uint32(sub.Len()))
	sec.WriteBytes(sub.Bytes())
	writeSection(w, secCustom, sec.Bytes())

	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out
}

func writeSection(w *binary.Writer, id byte, payload []byte) {
	w.Byte(id)
	w.WriteU32(uint32(len(payload)))
	w.WriteBytes(payload)
}

func writeSlot(w *binary.Writer, s SlotType) {
	w.Byte(byte(s.Tag))
	if s.Tag == TagRef {
		w.WriteU32(s.Ref)
	}
}

type localRun struct {
	count uint32
	typ   ValType
}

func localRuns(decl []ValType) []localRun {
	var runs []localRun
	for _, t := range decl {
		if n := len(runs); n > 0 && runs[n-1].typ == t {
			runs[n-1].count++
			continue
		}
		runs = append(runs, localRun{count: 1, typ: t})
	}
	return runs
}
