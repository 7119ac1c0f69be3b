package dataset

import "strings"

// Dtype is a duckdb logical type name, without parameters.
type Dtype string

const (
	BigInt      Dtype = "BIGINT"
	HugeInt     Dtype = "HUGEINT"
	Integer     Dtype = "INTEGER"
	SmallInt    Dtype = "SMALLINT"
	TinyInt     Dtype = "TINYINT"
	UBigInt     Dtype = "UBIGINT"
	UHugeInt    Dtype = "UHUGEINT"
	UInteger    Dtype = "UINTEGER"
	USmallInt   Dtype = "USMALLINT"
	UTinyInt    Dtype = "UTINYINT"
	Decimal     Dtype = "DECIMAL"
	Double      Dtype = "DOUBLE"
	Float       Dtype = "FLOAT"
	VarChar     Dtype = "VARCHAR"
	UUID        Dtype = "UUID"
	JSON        Dtype = "JSON"
	Date        Dtype = "DATE"
	Timestamp   Dtype = "TIMESTAMP"
	TimestampTZ Dtype = "TIMESTAMP WITH TIME ZONE"
	Time        Dtype = "TIME"
	Interval    Dtype = "INTERVAL"
	Boolean     Dtype = "BOOLEAN"
)

// ParseDtype strips parameters such as DECIMAL(18,3).
func ParseDtype(s string) Dtype {
	s = strings.ToUpper(strings.TrimSpace(s))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return Dtype(s)
}

var (
	numeric = map[Dtype]bool{
		BigInt: true, HugeInt: true, Integer: true, SmallInt: true, TinyInt: true,
		UBigInt: true, UHugeInt: true, UInteger: true, USmallInt: true, UTinyInt: true,
		Decimal: true, Double: true, Float: true,
	}
	text = map[Dtype]bool{
		VarChar: true, UUID: true, JSON: true,
	}
	temporal = map[Dtype]bool{
		Date: true, Timestamp: true, TimestampTZ: true, Time: true, Interval: true,
	}
)

func (d Dtype) IsText() bool { return text[d] }

func sameFamily(a, b Dtype) bool {
	switch {
	case numeric[a] && numeric[b]:
		return true
	case text[a] && text[b]:
		return true
	case temporal[a] && temporal[b]:
		return true
	}
	return false
}

// castableLossy allows string <-> numeric and string <-> temporal.
func castableLossy(a, b Dtype) bool {
	if (text[a] && numeric[b]) || (numeric[a] && text[b]) {
		return true
	}
	if (text[a] && temporal[b]) || (temporal[a] && text[b]) {
		return true
	}
	return false
}

func baseTypeScore(a, b Dtype) float64 {
	if a == b {
		return 1.0
	}
	if sameFamily(a, b) {
		return 0.8
	}
	if castableLossy(a, b) {
		return 0.3
	}
	return 0.0
}
