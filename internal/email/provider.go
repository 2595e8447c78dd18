package email

// Email - одно исходящее письмо
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет письмо
	Send(email *Email) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}
