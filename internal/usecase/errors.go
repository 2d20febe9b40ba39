package usecase

// Taxonomia de erros do núcleo. Cada tipo mapeia para um status HTTP no
// handler; a mensagem de StorageError nunca vaza detalhe interno.

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// AuthenticationError: evidência de pagamento que falhou verificação.
// Nunca é aceita silenciosamente — e a resposta é um 400 genérico, sem
// revelar se o campaign id existe.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func IsAuthenticationError(err error) bool {
	_, ok := err.(*AuthenticationError)
	return ok
}

// UnavailableError: a integração existe e está configurada, mas não
// respondeu (rede, timeout). Retriável — mapeia pra 503, não 500.
type UnavailableError struct {
	Integration string
}

func (e *UnavailableError) Error() string {
	return e.Integration + " temporariamente indisponível"
}

func IsUnavailableError(err error) bool {
	_, ok := err.(*UnavailableError)
	return ok
}

// ConfigurationError: integração obrigatória sem credencial (ex: Stripe).
// Falha dura, não degradação.
type ConfigurationError struct {
	Integration string
}

func (e *ConfigurationError) Error() string {
	return e.Integration + " não configurado"
}

func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// PaymentRequiredError: export pedido em campanha que ainda não pagou.
type PaymentRequiredError struct {
	Message string
}

func (e *PaymentRequiredError) Error() string {
	return e.Message
}

func IsPaymentRequiredError(err error) bool {
	_, ok := err.(*PaymentRequiredError)
	return ok
}

// StorageError: banco fora ou query falhou. Seguro de retentar; o caller
// recebe mensagem genérica e o detalhe fica no log.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure on " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsStorageError(err error) bool {
	_, ok := err.(*StorageError)
	return ok
}
