package slip

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a slip could not be read
type Kind string

const (
	KindConfig        Kind = "config"
	KindMissingImage  Kind = "missing_image"
	KindRateLimited   Kind = "rate_limited"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindUnreadable    Kind = "unreadable"
	KindUpstream      Kind = "upstream"
)

// ErrUnreadableSlip means the gateway answered without a parseable JSON object
var ErrUnreadableSlip = errors.New("no JSON object in gateway response")

// Error is returned by Reader.Read. Message is shown to the rider as is.
type Error struct {
	Kind    Kind
	Message string
	Raw     string // gateway text, only for KindUnreadable
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("slip %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("slip %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status is the HTTP status the failure is reported with
func (e *Error) Status() int {
	switch e.Kind {
	case KindMissingImage, KindUnreadable:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func errConfig() *Error {
	return &Error{Kind: KindConfig, Message: "Leitura de comanda não configurada: defina LLM_API_KEY."}
}

func errMissingImage() *Error {
	return &Error{Kind: KindMissingImage, Message: "Imagem não fornecida."}
}

func errRateLimited() *Error {
	return &Error{Kind: KindRateLimited, Message: "Limite de requisições excedido. Tente novamente em alguns segundos."}
}

func errQuotaExceeded() *Error {
	return &Error{Kind: KindQuotaExceeded, Message: "Créditos insuficientes. Adicione créditos ao seu workspace."}
}

func errUnreadable(raw string, err error) *Error {
	return &Error{
		Kind:    KindUnreadable,
		Message: "Não foi possível extrair as informações da comanda. Tente uma foto mais clara.",
		Raw:     raw,
		Err:     err,
	}
}

func errUpstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: "Erro no gateway de IA. Tente novamente mais tarde.", Err: err}
}
