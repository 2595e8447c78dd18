package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidAccountRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid account role for this operation",
	http.StatusBadRequest,
)

// --- Profiles ---

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Profile not found",
	http.StatusNotFound,
)

// --- Productions & Roles ---

var ErrProductionNotFound = New(
	CodeNotFound,
	"production",
	"Production not found",
	http.StatusNotFound,
)

var ErrRoleNotFound = New(
	CodeNotFound,
	"production",
	"Role not found in production",
	http.StatusNotFound,
)

// ErrNotProductionOwner - попытка изменить чужую постановку.
var ErrNotProductionOwner = New(
	CodeForbidden,
	"production",
	"Only the owning theater can modify this production",
	http.StatusForbidden,
)

// --- Matches ---

// ErrMatchAlreadyResolved - матч уже подтвержден или отклонен одной из сторон.
// Повторный вызов против терминального матча запрещен (явное решение, не
// унаследованная неоднозначность).
var ErrMatchAlreadyResolved = New(
	CodeConflict,
	"match",
	"Match has already been confirmed or rejected",
	http.StatusConflict,
)

var ErrMatchAccountNotFound = New(
	CodeNotFound,
	"match",
	"Both theater and talent accounts must exist to create a match",
	http.StatusNotFound,
)

// --- Threads ---

var ErrThreadNotFound = New(
	CodeNotFound,
	"thread",
	"Message thread not found",
	http.StatusNotFound,
)

var ErrNotThreadParticipant = New(
	CodeForbidden,
	"thread",
	"User is not a participant of this thread",
	http.StatusForbidden,
)
