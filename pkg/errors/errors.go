package errors

import "errors"

// Transactions service. Message text is part of the public API contract and
// stays in Portuguese on this side.
var (
	ErrTransactionNotFound       = errors.New("Transação não encontrada")
	ErrSenderNotFound            = errors.New("Usuário remetente não encontrado")
	ErrReceiverNotFound          = errors.New("Usuário destinatário não encontrado")
	ErrUsersServiceUnavailable   = errors.New("Erro ao comunicar com o serviço de usuários")
	ErrInvalidAmount             = errors.New("Valor da transação inválido")
	ErrSameUserTransfer          = errors.New("Não é possível transferir para si mesmo")
	ErrTransactionCreationFailed = errors.New("Falha ao criar transação")
)

// UpstreamMessageError forwards the users service's own structured error
// message to the caller during transaction validation.
type UpstreamMessageError struct {
	Message string
}

func (e *UpstreamMessageError) Error() string {
	return e.Message
}

// Users service.
var (
	ErrUserNotFound           = errors.New("User not found")
	ErrEmailInUse             = errors.New("Email already in use")
	ErrUpdateFailed           = errors.New("Failed to update user")
	ErrProfilePictureRequired = errors.New("Profile picture is required")
	ErrUnauthorized           = errors.New("Unauthorized")
)
