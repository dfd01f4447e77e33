// Package format defines the closed, on-disk stable enums shared by every
// layer of the columnar storage engine: the type-category of a column, its
// cardinality, and the compression algorithm applied to its payload.
//
// Tag byte values are part of the file format and must stay stable across
// versions; new categories or compression schemes must be appended, never
// inserted.
package format

// Category identifies the stored type of a column. A column is identified
// by the pair (name, Category): the same name recorded under two different
// categories produces two distinct columns.
type Category uint8

const (
	CategoryBool     Category = 0
	CategoryI64      Category = 1
	CategoryU64      Category = 2
	CategoryF64      Category = 3
	CategoryDateTime Category = 4
	CategoryIPAddr   Category = 5
	CategoryBytes    Category = 6
	CategoryStr      Category = 7
)

func (c Category) String() string {
	switch c {
	case CategoryBool:
		return "Bool"
	case CategoryI64:
		return "I64"
	case CategoryU64:
		return "U64"
	case CategoryF64:
		return "F64"
	case CategoryDateTime:
		return "DateTime"
	case CategoryIPAddr:
		return "IpAddr"
	case CategoryBytes:
		return "Bytes"
	case CategoryStr:
		return "Str"
	default:
		return "Unknown"
	}
}

// IsDictionaryEncoded reports whether columns of this category carry a term
// dictionary (Str, Bytes).
func (c Category) IsDictionaryEncoded() bool {
	return c == CategoryStr || c == CategoryBytes
}

// IsNumeric reports whether the category is unified under the numerical
// promotion lattice (U64, I64, F64), or shares its codec (DateTime).
func (c Category) IsNumeric() bool {
	switch c {
	case CategoryI64, CategoryU64, CategoryF64, CategoryDateTime:
		return true
	default:
		return false
	}
}

// Cardinality records how many values a row may carry for a column.
type Cardinality uint8

const (
	// Required means every row has exactly one value.
	Required Cardinality = 0
	// Optional means every row has zero or one value.
	Optional Cardinality = 1
	// Multivalued means every row has zero or more values.
	Multivalued Cardinality = 2
)

func (c Cardinality) String() string {
	switch c {
	case Required:
		return "Required"
	case Optional:
		return "Optional"
	case Multivalued:
		return "Multivalued"
	default:
		return "Unknown"
	}
}

// CompressionType identifies the general-purpose byte compressor, if any,
// applied to a column's encoded payload before it is framed into the file.
// This is additive to the base file format: CompressionNone produces
// byte-identical framing to an uncompressed build.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
