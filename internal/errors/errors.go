package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError - сущность не найдена
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is позволяет сравнивать через errors.Is по имени сущности
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return t.Entity == "" || e.Entity == t.Entity
}

// ValidationError - некорректные или дублирующиеся входные данные
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// TransitionError - переход отсутствует в канонической таблице
type TransitionError struct {
	From    string
	To      string
	Allowed []string
}

func (e *TransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("illegal transition from '%s' to '%s': allowed transitions are: %s", e.From, e.To, allowed)
}

// AuthorizationError - роль пользователя не разрешает действие
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// DeliveryError - уведомление не удалось отправить
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notification delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Entity Not Found Errors
var (
	ErrIncidentNotFound     = &NotFoundError{Entity: "incident"}
	ErrDepartmentNotFound   = &NotFoundError{Entity: "department"}
	ErrCrewNotFound         = &NotFoundError{Entity: "crew"}
	ErrActorNotFound        = &NotFoundError{Entity: "actor"}
	ErrIncidentTypeNotFound = &NotFoundError{Entity: "incident type"}
	ErrEvidenceNotFound     = &NotFoundError{Entity: "evidence"}
)

// Authorization Errors
var (
	ErrUnauthorizedTransition = &AuthorizationError{Message: "role does not permit this state change"}
	ErrForbidden              = &AuthorizationError{Message: "action not permitted for this user"}
	ErrNotCrewMember          = &AuthorizationError{Message: "user is not a member of any crew"}
)

// Lifecycle Errors
var (
	ErrMissingEvidence        = errors.New("at least one evidence item is required before finalizing")
	ErrMissingRejectionReason = errors.New("a rejection reason is required")
	ErrNotInProgress          = errors.New("evidence can only be attached while the incident is in progress")
)

// NewValidationError создает ValidationError для поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound проверяет, является ли ошибка NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation проверяет, является ли ошибка ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsIllegalTransition проверяет, является ли ошибка TransitionError
func IsIllegalTransition(err error) bool {
	var transitionErr *TransitionError
	return errors.As(err, &transitionErr)
}

// IsAuthorization проверяет, является ли ошибка AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsDelivery проверяет, является ли ошибка DeliveryError
func IsDelivery(err error) bool {
	var deliveryErr *DeliveryError
	return errors.As(err, &deliveryErr)
}
