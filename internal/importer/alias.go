package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is one of the nine canonical attributes every imported column maps onto.
type Field string

const (
	FieldModel     Field = "model"
	FieldBrand     Field = "brand"
	FieldType      Field = "type"
	FieldColor     Field = "color"
	FieldPrice     Field = "price"
	FieldQuantity  Field = "quantity"
	FieldSupplier  Field = "supplier"
	FieldEntryDate Field = "entryDate"
	FieldNotes     Field = "notes"
)

// fieldOrder fixes the priority when a header could match more than one
// field: the earlier entry wins. Do not reorder.
var fieldOrder = []Field{
	FieldModel,
	FieldBrand,
	FieldType,
	FieldColor,
	FieldPrice,
	FieldQuantity,
	FieldSupplier,
	FieldEntryDate,
	FieldNotes,
}

// AliasTable maps a canonical field to the header substrings recognized for
// it. Aliases are stored lowercase and without diacritics; headers are
// normalized the same way before matching.
type AliasTable map[Field][]string

// DefaultAliases returns the built-in alias vocabulary. Callers get a fresh
// copy; the table handed to NewMapper is never mutated afterwards.
func DefaultAliases() AliasTable {
	src := AliasTable{
		FieldModel:     {"modelo", "model", "nome", "name", "produto", "product", "celular", "aparelho"},
		FieldBrand:     {"marca", "brand", "fabricante", "manufacturer"},
		FieldType:      {"tipo", "type", "categoria", "category", "material"},
		FieldColor:     {"cor", "color", "colour"},
		FieldPrice:     {"preco", "price", "valor", "value", "custo", "cost"},
		FieldQuantity:  {"quantidade", "qty", "qtd", "quantity", "estoque", "stock", "quant"},
		FieldSupplier:  {"fornecedor", "supplier", "vendor", "distribuidor"},
		FieldEntryDate: {"data", "date", "data_entrada", "entrada", "data entrada"},
		FieldNotes:     {"observacoes", "obs", "notes", "notas", "observacao"},
	}
	out := make(AliasTable, len(src))
	for f, aliases := range src {
		out[f] = append([]string(nil), aliases...)
	}
	return out
}

// ValidField reports whether s names a canonical field.
func ValidField(s string) bool {
	for _, f := range fieldOrder {
		if string(f) == s {
			return true
		}
	}
	return false
}

// stripMarks removes combining marks after NFD decomposition, so "preço"
// compares equal to "preco".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader canonicalizes a raw header for alias matching: lowercase,
// trimmed, stripped of everything but letters, digits, whitespace and
// underscore, with diacritics folded away.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	folded, _, err := transform.String(stripMarks, b.String())
	if err != nil {
		return b.String()
	}
	return folded
}

// Mapping associates raw spreadsheet headers with canonical fields. Headers
// that match nothing are simply absent.
type Mapping map[string]Field

// Assign binds header to field, evicting any other header currently holding
// that field. A confirmed mapping holds at most one header per field.
func (m Mapping) Assign(header string, field Field) {
	for h, f := range m {
		if f == field {
			delete(m, h)
		}
	}
	m[header] = field
}

// Unassign drops the header from the mapping; its column will be ignored.
func (m Mapping) Unassign(header string) {
	delete(m, header)
}

type rule struct {
	field   Field
	aliases []string
}

// Mapper resolves spreadsheet headers to canonical fields using an alias
// table. It inspects headers only, never row values.
type Mapper struct {
	rules []rule
}

// NewMapper builds a mapper over the given alias table. Fields missing from
// the table never match.
func NewMapper(table AliasTable) *Mapper {
	m := &Mapper{}
	for _, f := range fieldOrder {
		if aliases, ok := table[f]; ok {
			m.rules = append(m.rules, rule{field: f, aliases: aliases})
		}
	}
	return m
}

// Match resolves a single header. The first field in declaration order whose
// alias set contains the normalized header as a substring wins.
func (m *Mapper) Match(header string) (Field, bool) {
	normalized := NormalizeHeader(header)
	if normalized == "" {
		return "", false
	}
	for _, r := range m.rules {
		for _, alias := range r.aliases {
			if strings.Contains(normalized, alias) {
				return r.field, true
			}
		}
	}
	return "", false
}

// Resolve auto-detects a mapping for a whole header row. Detection only:
// two headers may both resolve to the same field here, the import workflow
// keeps the first one in sheet order when it confirms the mapping.
func (m *Mapper) Resolve(headers []string) Mapping {
	out := make(Mapping, len(headers))
	for _, h := range headers {
		if f, ok := m.Match(h); ok {
			out[h] = f
		}
	}
	return out
}
