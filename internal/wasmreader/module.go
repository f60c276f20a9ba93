package wasmreader

import (
	"bytes"

	"github.com/nspcc-dev/contractdbg/internal/cache"
	"github.com/nspcc-dev/contractdbg/internal/errs"
)

// Magic is the canonical 8-byte guest-bytecode header: a 4-byte magic
// marker followed by a 4-byte little-endian version number.
var Magic = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

const (
	sectionCustom   = 0
	sectionType     = 1
	sectionFunction = 3
	sectionExport   = 7
)

const exportKindFunction = 0x00

type funcType struct {
	params  []GuestType
	results []GuestType
}

type module struct {
	types       []funcType
	funcTypeIdx []uint32
	exportOrder []string
	exportFuncs map[string]uint32
	custom      map[string][]byte
}

func parseModule(b []byte) (*module, error) {
	if len(b) < len(Magic) || !bytes.Equal(b[:len(Magic)], Magic) {
		return nil, errs.InvalidBinary("missing or unrecognised module header")
	}
	r := NewReader(b[len(Magic):])
	m := &module{exportFuncs: map[string]uint32{}, custom: map[string][]byte{}}
	for r.Remaining() > 0 {
		id := r.ReadByte()
		size := r.ReadVarUint()
		if r.Err() != nil {
			return nil, errs.InvalidBinary("truncated section header: %v", r.Err())
		}
		body := r.ReadBytes(int(size))
		if r.Err() != nil {
			return nil, errs.InvalidBinary("truncated section body: %v", r.Err())
		}
		var err error
		switch id {
		case sectionType:
			err = m.parseTypeSection(body)
		case sectionFunction:
			err = m.parseFunctionSection(body)
		case sectionExport:
			err = m.parseExportSection(body)
		case sectionCustom:
			err = m.parseCustomSection(body)
		default:
			// Unrecognised section kinds are skipped for forward
			// compatibility, same as a real module format would.
		}
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// moduleCache memoises parseModule results keyed by a murmur3 hash of
// the raw bytes, so that inspect/run/upgrade-check invocations against
// the same binary within one process parse its sections only once. Its
// size defaults to 256 entries and is adjustable once at startup via
// SetCacheSize, before any parsing has happened.
var moduleCache = mustCache(256)

func mustCache(size int) *cache.Cache {
	c, err := cache.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// SetCacheSize rebuilds the module cache with the given capacity,
// discarding any entries already cached. Intended to be called once at
// process startup from the loaded debugconfig.Config; a non-positive
// size is ignored.
func SetCacheSize(size int) {
	if size <= 0 {
		return
	}
	moduleCache = mustCache(size)
}

// parseModuleCached is parseModule with a process-lifetime cache in
// front of it. Only successful parses are cached; a malformed module
// is cheap to re-reject and its error carries no state worth keeping.
func parseModuleCached(b []byte) (*module, error) {
	key := cache.Key(b)
	if v, ok := moduleCache.Get(key); ok {
		return v.(*module), nil
	}
	m, err := parseModule(b)
	if err != nil {
		return nil, err
	}
	moduleCache.Put(key, m)
	return m, nil
}

func (m *module) parseTypeSection(body []byte) error {
	r := NewReader(body)
	count := r.ReadVarUint()
	for i := uint64(0); i < count; i++ {
		form := r.ReadByte()
		if form != 0x60 {
			return errs.InvalidBinary("unsupported type form 0x%02x", form)
		}
		paramCount := r.ReadVarUint()
		params := make([]GuestType, 0, paramCount)
		for j := uint64(0); j < paramCount; j++ {
			params = append(params, guestTypeFromByte(r.ReadByte()))
		}
		resultCount := r.ReadVarUint()
		results := make([]GuestType, 0, resultCount)
		for j := uint64(0); j < resultCount; j++ {
			results = append(results, guestTypeFromByte(r.ReadByte()))
		}
		if r.Err() != nil {
			return errs.InvalidBinary("truncated type entry: %v", r.Err())
		}
		m.types = append(m.types, funcType{params: params, results: results})
	}
	return nil
}

func (m *module) parseFunctionSection(body []byte) error {
	r := NewReader(body)
	count := r.ReadVarUint()
	for i := uint64(0); i < count; i++ {
		m.funcTypeIdx = append(m.funcTypeIdx, uint32(r.ReadVarUint()))
	}
	if r.Err() != nil {
		return errs.InvalidBinary("truncated function section: %v", r.Err())
	}
	return nil
}

func (m *module) parseExportSection(body []byte) error {
	r := NewReader(body)
	count := r.ReadVarUint()
	for i := uint64(0); i < count; i++ {
		nameLen := r.ReadVarUint()
		name := string(r.ReadBytes(int(nameLen)))
		kind := r.ReadByte()
		idx := r.ReadVarUint()
		if r.Err() != nil {
			return errs.InvalidBinary("truncated export entry: %v", r.Err())
		}
		if kind == exportKindFunction {
			if _, exists := m.exportFuncs[name]; !exists {
				m.exportOrder = append(m.exportOrder, name)
			}
			m.exportFuncs[name] = uint32(idx)
		}
	}
	return nil
}

func (m *module) parseCustomSection(body []byte) error {
	r := NewReader(body)
	nameLen := r.ReadVarUint()
	name := string(r.ReadBytes(int(nameLen)))
	if r.Err() != nil {
		return errs.InvalidBinary("malformed custom section name: %v", r.Err())
	}
	m.custom[name] = body[r.Pos():]
	return nil
}

func (m *module) signatureFor(name string) FunctionSignature {
	var ft funcType
	if fidx, ok := m.exportFuncs[name]; ok && int(fidx) < len(m.funcTypeIdx) {
		if tidx := m.funcTypeIdx[fidx]; int(tidx) < len(m.types) {
			ft = m.types[tidx]
		}
	}
	return FunctionSignature{Name: name, Params: ft.params, Results: ft.results}
}
