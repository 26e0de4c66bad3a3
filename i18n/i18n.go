// Package i18n holds the UI translations and language negotiation.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is used whenever a request does not ask for a supported language.
const DefaultLang = "pt"

var (
	supported = []language.Tag{language.BrazilianPortuguese, language.AmericanEnglish}
	codes     = []string{"pt", "en"}
	matcher   = language.NewMatcher(supported)
)

var catalog = map[string]map[string]string{
	"pt": {
		"required":         "Obrigatório",
		"invalid_email":    "Email inválido",
		"must_be_positive": "Deve ser positivo",
		"invalid_type":     "Tipo inválido",
		"invalid":          "Valor inválido",

		"app_title":        "Carteira",
		"nav_home":         "Início",
		"nav_clients":      "Clientes",
		"nav_assets":       "Ativos",
		"clients_title":    "Clientes",
		"assets_title":     "Ativos Financeiros",
		"client_assets":    "Ativos do Cliente",
		"add_client":       "Adicionar Cliente",
		"cancel":           "Cancelar",
		"submit_client":    "Cadastrar",
		"submit_asset":     "Cadastrar Ativo",
		"field_name":       "Nome",
		"field_email":      "Email",
		"field_status":     "Status",
		"field_value":      "Valor (R$)",
		"status_active":    "Ativo",
		"status_inactive":  "Inativo",
		"toggle_status":    "Alternar status",
		"delete":           "Excluir",
		"view_assets":      "Ver ativos",
		"no_clients":       "Nenhum cliente cadastrado.",
		"no_assets":        "Nenhum ativo cadastrado.",
		"welcome":          "Gestão de clientes e ativos financeiros",
		"client_created":   "Cliente cadastrado com sucesso!",
		"client_updated":   "Cliente atualizado com sucesso!",
		"client_deleted":   "Cliente removido.",
		"asset_created":    "Ativo cadastrado com sucesso!",
		"asset_deleted":    "Ativo removido.",
		"load_clients_err": "Erro ao carregar clientes.",
		"load_assets_err":  "Erro ao carregar ativos.",
		"save_failed":      "Não foi possível salvar. Tente novamente.",
		"delete_failed":    "Não foi possível remover.",
		"client_not_found": "Cliente não encontrado",
		"asset_not_found":  "Ativo não encontrado",

		"client_has_assets": "Cliente possui ativos e não pode ser removido",
	},
	"en": {
		"required":         "Required",
		"invalid_email":    "Invalid email",
		"must_be_positive": "Must be positive",
		"invalid_type":     "Invalid type",
		"invalid":          "Invalid value",

		"app_title":        "Portfolio",
		"nav_home":         "Home",
		"nav_clients":      "Clients",
		"nav_assets":       "Assets",
		"clients_title":    "Clients",
		"assets_title":     "Financial Assets",
		"client_assets":    "Client Assets",
		"add_client":       "Add Client",
		"cancel":           "Cancel",
		"submit_client":    "Save",
		"submit_asset":     "Save Asset",
		"field_name":       "Name",
		"field_email":      "Email",
		"field_status":     "Status",
		"field_value":      "Value (R$)",
		"status_active":    "Active",
		"status_inactive":  "Inactive",
		"toggle_status":    "Toggle status",
		"delete":           "Delete",
		"view_assets":      "View assets",
		"no_clients":       "No clients yet.",
		"no_assets":        "No assets yet.",
		"welcome":          "Client and financial asset management",
		"client_created":   "Client created successfully!",
		"client_updated":   "Client updated successfully!",
		"client_deleted":   "Client removed.",
		"asset_created":    "Asset created successfully!",
		"asset_deleted":    "Asset removed.",
		"load_clients_err": "Failed to load clients.",
		"load_assets_err":  "Failed to load assets.",
		"save_failed":      "Could not save. Please try again.",
		"delete_failed":    "Could not delete.",
		"client_not_found": "Client not found",
		"asset_not_found":  "Asset not found",

		"client_has_assets": "Client owns assets and cannot be removed",
	},
}

// T translates code into lang. Unknown languages fall back to Portuguese and
// unknown codes are returned unchanged.
func T(lang, code string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks the best supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	return codes[idx]
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// Money formats an amount in reais using the number conventions of lang.
func Money(lang string, v float64) string {
	tag := supported[0]
	for i, c := range codes {
		if c == lang {
			tag = supported[i]
		}
	}
	return message.NewPrinter(tag).Sprintf("R$ %.2f", v)
}

type langKey struct{}

// WithLang stores the negotiated language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the language stored by WithLang, or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(langKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLang
}
