package fields

import "go-id-extractor/pkg/models"

// Kind is the closed enumeration of identity-document field kinds. Every
// kind must be handled by the exhaustive switches in this package; adding a
// kind without extending them is a compile-visible omission, not a silently
// missing map entry.
type Kind int

const (
	KindNume Kind = iota
	KindCNP
	KindDataNasterii
	KindLocNastere
	KindDomiciliu
	KindSeria
	KindNumar
	KindDataEliberarii
	KindEliberatDe
	KindValabilPanaLa

	kindCount
)

// Kinds returns every field kind in canonical order
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Name returns the canonical JSON name of the field
func (k Kind) Name() string {
	switch k {
	case KindNume:
		return "nume"
	case KindCNP:
		return "cnp"
	case KindDataNasterii:
		return "data_nasterii"
	case KindLocNastere:
		return "loc_nastere"
	case KindDomiciliu:
		return "domiciliu"
	case KindSeria:
		return "seria"
	case KindNumar:
		return "numar"
	case KindDataEliberarii:
		return "data_eliberarii"
	case KindEliberatDe:
		return "eliberat_de"
	case KindValabilPanaLa:
		return "valabil_pana_la"
	default:
		return "unknown"
	}
}

// Description returns the human-readable format rule for the field
func (k Kind) Description() string {
	switch k {
	case KindNume:
		return "full name, uppercase letters with diacritics"
	case KindCNP:
		return "personal numeric code, exactly 13 digits, first digit 1-8"
	case KindDataNasterii:
		return "birth date in DD.MM.YYYY format"
	case KindLocNastere:
		return "birth place, uppercase letters with diacritics"
	case KindDomiciliu:
		return "address including a street marker or number"
	case KindSeria:
		return "document series, 1-3 uppercase letters"
	case KindNumar:
		return "document number, exactly 6 digits"
	case KindDataEliberarii:
		return "issue date in DD.MM.YYYY format"
	case KindEliberatDe:
		return "issuing authority, uppercase"
	case KindValabilPanaLa:
		return "validity date in DD.MM.YYYY format"
	default:
		return ""
	}
}

// Get reads the field of the given kind from a FieldSet
func Get(set *models.FieldSet, k Kind) *string {
	switch k {
	case KindNume:
		return set.Nume
	case KindCNP:
		return set.CNP
	case KindDataNasterii:
		return set.DataNasterii
	case KindLocNastere:
		return set.LocNastere
	case KindDomiciliu:
		return set.Domiciliu
	case KindSeria:
		return set.Seria
	case KindNumar:
		return set.Numar
	case KindDataEliberarii:
		return set.DataEliberarii
	case KindEliberatDe:
		return set.EliberatDe
	case KindValabilPanaLa:
		return set.ValabilPanaLa
	default:
		return nil
	}
}

// Set writes the field of the given kind into a FieldSet
func Set(set *models.FieldSet, k Kind, value *string) {
	switch k {
	case KindNume:
		set.Nume = value
	case KindCNP:
		set.CNP = value
	case KindDataNasterii:
		set.DataNasterii = value
	case KindLocNastere:
		set.LocNastere = value
	case KindDomiciliu:
		set.Domiciliu = value
	case KindSeria:
		set.Seria = value
	case KindNumar:
		set.Numar = value
	case KindDataEliberarii:
		set.DataEliberarii = value
	case KindEliberatDe:
		set.EliberatDe = value
	case KindValabilPanaLa:
		set.ValabilPanaLa = value
	}
}

// PresentCount returns how many fields are populated
func PresentCount(set *models.FieldSet) int {
	count := 0
	for _, k := range Kinds() {
		if Get(set, k) != nil {
			count++
		}
	}
	return count
}
