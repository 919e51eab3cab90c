package quote

import (
	"strings"
)

// keyword matches a folded token either exactly or as a prefix
type keyword struct {
	text   string
	prefix bool
}

func exact(s string) keyword  { return keyword{text: s} }
func prefix(s string) keyword { return keyword{text: s, prefix: true} }

func (k keyword) matches(token string) bool {
	if k.prefix {
		return strings.HasPrefix(token, k.text)
	}
	return token == k.text
}

// Column signal groups looked for in a header line
var (
	itemKeywords = []keyword{
		prefix("article"), prefix("designation"), prefix("descriptif"), prefix("description"),
		prefix("libelle"), prefix("reference"), prefix("produit"), prefix("prestation"),
		prefix("intitule"), exact("ref"), exact("desc"), exact("objet"), exact("item"),
	}
	quantityKeywords = []keyword{
		prefix("qte"), prefix("quantite"), prefix("qty"), prefix("nombre"),
		exact("qt"), exact("nb"), exact("nbre"), exact("quant"),
	}
	priceKeywords = []keyword{
		prefix("prix"), prefix("unitaire"), prefix("tarif"),
		exact("pu"), exact("puht"), exact("pv"), exact("unit"),
	}
	totalKeywords = []keyword{
		prefix("total"), prefix("montant"), prefix("amount"),
		exact("ttc"), exact("ht"), exact("mt"), exact("mnt"),
	}
)

// footerPhrases end the item table when found in a folded line
var footerPhrases = []string{
	"total ht",
	"total ttc",
	"solde total",
	"taux de tva",
	"net a payer",
	"net a regler",
	"acompte",
	"total general",
}

func anyMatch(tokens []string, keywords []keyword) bool {
	for _, tok := range tokens {
		for _, k := range keywords {
			if k.matches(tok) {
				return true
			}
		}
	}
	return false
}

// IsHeader reports whether line looks like the column titles of an item
// table. Three of the four signal groups must be present, or a quantity
// column together with a price or total column.
func IsHeader(line string) bool {
	tokens := foldedTokens(line)
	if len(tokens) == 0 {
		return false
	}

	item := anyMatch(tokens, itemKeywords)
	qty := anyMatch(tokens, quantityKeywords)
	price := anyMatch(tokens, priceKeywords)
	total := anyMatch(tokens, totalKeywords)

	signals := 0
	for _, present := range []bool{item, qty, price, total} {
		if present {
			signals++
		}
	}
	if signals >= 3 {
		return true
	}

	return qty && (price || total) && (item || price || total)
}

// IsFooter reports whether line marks the end of the item table (totals,
// tax summary, payment terms)
func IsFooter(line string) bool {
	normalized := strings.Join(strings.Fields(fold(line)), " ")
	for _, phrase := range footerPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
