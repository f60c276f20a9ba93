package wasmreader

import (
	"bytes"
	"encoding/json"
)

// Builder assembles a minimal, well-formed module image in memory. It
// exists for tests and for the bundled example contracts the CLI ships
// with; it is not a general-purpose compiler backend.
type Builder struct {
	funcs []builderFunc
	spec  *ContractSpec
}

type builderFunc struct {
	name    string
	params  []GuestType
	results []GuestType
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) AddFunction(name string, params, results []GuestType) *Builder {
	b.funcs = append(b.funcs, builderFunc{name: name, params: params, results: results})
	return b
}

func (b *Builder) SetContractSpec(spec ContractSpec) *Builder {
	b.spec = &spec
	return b
}

func section(id byte, body []byte) []byte {
	var out []byte
	out = append(out, id)
	out = append(out, EncodeVarUint(uint64(len(body)))...)
	out = append(out, body...)
	return out
}

func encodeString(s string) []byte {
	out := EncodeVarUint(uint64(len(s)))
	return append(out, []byte(s)...)
}

// Bytes encodes the accumulated functions and optional spec section into a
// complete module image.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	out.Write(Magic)

	var typeBody []byte
	typeBody = append(typeBody, EncodeVarUint(uint64(len(b.funcs)))...)
	for _, f := range b.funcs {
		typeBody = append(typeBody, 0x60)
		typeBody = append(typeBody, EncodeVarUint(uint64(len(f.params)))...)
		for _, p := range f.params {
			typeBody = append(typeBody, guestTypeToByte(p))
		}
		typeBody = append(typeBody, EncodeVarUint(uint64(len(f.results)))...)
		for _, rtype := range f.results {
			typeBody = append(typeBody, guestTypeToByte(rtype))
		}
	}
	out.Write(section(sectionType, typeBody))

	var funcBody []byte
	funcBody = append(funcBody, EncodeVarUint(uint64(len(b.funcs)))...)
	for i := range b.funcs {
		funcBody = append(funcBody, EncodeVarUint(uint64(i))...)
	}
	out.Write(section(sectionFunction, funcBody))

	var exportBody []byte
	exportBody = append(exportBody, EncodeVarUint(uint64(len(b.funcs)))...)
	for i, f := range b.funcs {
		exportBody = append(exportBody, encodeString(f.name)...)
		exportBody = append(exportBody, exportKindFunction)
		exportBody = append(exportBody, EncodeVarUint(uint64(i))...)
	}
	out.Write(section(sectionExport, exportBody))

	if b.spec != nil {
		payload, _ := json.Marshal(b.spec)
		var customBody []byte
		customBody = append(customBody, encodeString(ContractSpecSection)...)
		customBody = append(customBody, payload...)
		out.Write(section(sectionCustom, customBody))
	}

	return out.Bytes()
}
