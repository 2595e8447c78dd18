package email

import "fmt"

// Subject lines уведомлений матчинга
const (
	SubjectInterestReceived = "Someone is interested in working with you on StageMatch"
	SubjectMatchConfirmed   = "You have a new match on StageMatch"
)

// BuildInterestEmail - письмо о новой заявке интереса
func BuildInterestEmail(to, recipientName, productionTitle, roleName string) *Email {
	text := fmt.Sprintf(
		"Hi %s,\n\n"+
			"There is new interest in the role %q for the production %q.\n"+
			"Log in to StageMatch to review and respond.\n",
		recipientName, roleName, productionTitle)
	return &Email{
		To:       to,
		Subject:  SubjectInterestReceived,
		TextBody: text,
	}
}

// BuildMatchConfirmedEmail - письмо о подтвержденном матче.
// counterpartContact может быть "email not available", когда у второй
// стороны нет ни контактного, ни аккаунтного email.
func BuildMatchConfirmedEmail(to, recipientName, counterpartName, counterpartContact, productionTitle, roleName string) *Email {
	text := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your match for the role %q in %q is confirmed.\n"+
			"You can now message %s on StageMatch. Contact email: %s\n",
		recipientName, roleName, productionTitle, counterpartName, counterpartContact)
	return &Email{
		To:       to,
		Subject:  SubjectMatchConfirmed,
		TextBody: text,
	}
}
