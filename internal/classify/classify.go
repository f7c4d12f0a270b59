// Package classify maps backend transaction-type codes to the display
// metadata the extract screens render: a human-readable label, a
// credit/debit direction, and a symbolic icon tag.
//
// Directions are a fixed business decision per code, taken from the
// perspective of the account being displayed. Money moving into a
// wallet (deposit, wallet creation) is a debit of the main account;
// money coming back out (wallet withdrawal, wallet deletion) is a
// credit. The direction is never inferred from an amount sign.
package classify

// Direction is the display-perspective sign of a transaction.
type Direction string

const (
	Credit Direction = "entrada"
	Debit  Direction = "saida"
)

// Classification is the display metadata for one transaction-type code.
type Classification struct {
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	Direction Direction `json:"direction"`
	Icon      string    `json:"icon"`
	Known     bool      `json:"known"`
}

// Unknown is returned for any code outside the closed set. Callers are
// expected to log and fall back to this generic presentation; Classify
// never panics on backend codes it has not seen.
var Unknown = Classification{
	Label:     "Movimentação",
	Direction: Debit,
	Icon:      "generic",
	Known:     false,
}

var table = map[string]Classification{
	"DEPOSITO":                      {Label: "Depósito", Direction: Credit, Icon: "deposit"},
	"SAQUE":                         {Label: "Saque", Direction: Debit, Icon: "withdraw"},
	"CRIACAO_CARTEIRA":              {Label: "Criação de Carteira", Direction: Debit, Icon: "wallet"},
	"EXCLUSAO_CARTEIRA":             {Label: "Exclusão de Carteira", Direction: Credit, Icon: "wallet"},
	"TRANSFERENCIA_INTERNA_ENVIADA": {Label: "Transferência interna enviada", Direction: Debit, Icon: "transfer"},
	"TRANSFERENCIA_EXTERNA_ENVIADA": {Label: "Transferência externa enviada", Direction: Debit, Icon: "transfer"},
	"PAGAMENTO_BOLETO":              {Label: "Pagamento de boleto", Direction: Debit, Icon: "barcode"},
	"COMPRA_DEBITO":                 {Label: "Compra no débito", Direction: Debit, Icon: "card"},
	"PIX_ENVIADO":                   {Label: "PIX enviado", Direction: Debit, Icon: "pix"},
	"TRANSFERENCIA_RECEBIDA":        {Label: "Transferência recebida", Direction: Credit, Icon: "transfer"},
	"PIX_RECEBIDO":                  {Label: "PIX recebido", Direction: Credit, Icon: "pix"},
	"DEPOSITO_CARTEIRA":             {Label: "Depósito na Carteira", Direction: Debit, Icon: "wallet"},
	"SAQUE_CARTEIRA":                {Label: "Saque da Carteira", Direction: Credit, Icon: "wallet"},
}

// Classify returns the display metadata for a backend type code. The
// backend evolves independently, so codes outside the closed set yield
// Unknown (with the original code preserved) rather than an error.
func Classify(code string) Classification {
	c, ok := table[code]
	if !ok {
		c = Unknown
		c.Code = code
		return c
	}
	c.Code = code
	c.Known = true
	return c
}

// Codes returns every code in the closed set. Used by callers that
// need to enumerate the table (and by tests asserting totality).
func Codes() []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	return codes
}
