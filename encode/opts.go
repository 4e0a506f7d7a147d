package encode

type EncodeOption func(*EncState)

// EncodeIndent sets the indent unit, for example two spaces or a tab. The
// empty unit means compact output, the default.
func EncodeIndent(unit string) EncodeOption {
	return func(es *EncState) { es.indent = unit }
}

// EncodeOmitNull skips object members whose value is null or undefined.
// Array elements are never skipped.
func EncodeOmitNull(v bool) EncodeOption {
	return func(es *EncState) { es.omitNull = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
