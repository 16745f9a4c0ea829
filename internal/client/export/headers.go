package export

import "github.com/dmitrijs2005/debtkeeper/internal/models"

// Headers is the fixed column set of a spreadsheet export, in column order:
// ID, Date, Borrower, Category, Tags, Status, Amount, Note, DueDate. Lent and
// Repaid are the Status column values.
type Headers struct {
	Columns [9]string
	Lent    string
	Repaid  string
}

// EnglishHeaders is the default header set.
var EnglishHeaders = Headers{
	Columns: [9]string{"ID", "Date", "Borrower", "Category", "Tags", "Status", "Amount", "Note", "DueDate"},
	Lent:    "Lent",
	Repaid:  "Repaid",
}

var localizedHeaders = map[models.Language]Headers{
	models.LanguageSpanish: {
		Columns: [9]string{"ID", "Fecha", "Prestatario", "Categoría", "Etiquetas", "Estado", "Importe", "Nota", "Vencimiento"},
		Lent:    "Prestado",
		Repaid:  "Devuelto",
	},
	models.LanguageFrench: {
		Columns: [9]string{"ID", "Date", "Emprunteur", "Catégorie", "Étiquettes", "Statut", "Montant", "Note", "Échéance"},
		Lent:    "Prêté",
		Repaid:  "Remboursé",
	},
	models.LanguageGerman: {
		Columns: [9]string{"ID", "Datum", "Schuldner", "Kategorie", "Tags", "Status", "Betrag", "Notiz", "Fällig"},
		Lent:    "Verliehen",
		Repaid:  "Zurückgezahlt",
	},
	models.LanguagePortuguese: {
		Columns: [9]string{"ID", "Data", "Devedor", "Categoria", "Etiquetas", "Estado", "Valor", "Nota", "Vencimento"},
		Lent:    "Emprestado",
		Repaid:  "Pago",
	},
	models.LanguageTurkish: {
		Columns: [9]string{"ID", "Tarih", "Borçlu", "Kategori", "Etiketler", "Durum", "Tutar", "Not", "Vade"},
		Lent:    "Verildi",
		Repaid:  "Ödendi",
	},
	models.LanguageChinese: {
		Columns: [9]string{"ID", "日期", "借款人", "类别", "标签", "状态", "金额", "备注", "到期日"},
		Lent:    "借出",
		Repaid:  "已还",
	},
}

// HeadersFor returns the header set for lang, falling back to English.
func HeadersFor(lang models.Language) Headers {
	if h, ok := localizedHeaders[lang]; ok {
		return h
	}
	return EnglishHeaders
}

func (h Headers) status(t models.Transaction) string {
	if t.IsLend() {
		return h.Lent
	}
	return h.Repaid
}
