package validator

import (
	"log"
	"strings"

	"stagematch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-account-role", validateAccountRole)
	mustRegister("is-production-status", validateProductionStatus)
	mustRegister("is-stage-role", validateStageRole)
	mustRegister("is-gender-identity", validateGenderIdentity)
	mustRegister("is-role-type", validateRoleType)
}

// --- Функции валидации ---

func validateAccountRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}

	switch models.UserRole(value) {
	case models.UserRoleTalent, models.UserRoleTheater, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateProductionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidProductionStatus(value)
}

func validateStageRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case strings.ToLower(models.StageRoleOnStage),
		strings.ToLower(models.StageRoleOffStage),
		strings.ToLower(models.StageRoleBoth):
		return true
	default:
		return false
	}
}

func validateGenderIdentity(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case models.GenderCisWoman, models.GenderCisMan,
		models.GenderTransNonbinary, models.GenderNoResponse:
		return true
	default:
		return false
	}
}

func validateRoleType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case models.RoleTypeOnStage, models.RoleTypeOffStage:
		return true
	default:
		return false
	}
}
