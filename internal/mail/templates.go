package mail

import (
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Templates renders the transactional mails of the site. All user-supplied
// values pass through html.EscapeString before interpolation so a stored
// string can never inject markup or headers into outgoing mail.
type Templates struct {
	SiteName    string
	SiteEmail   string
	SiteAddress string
	SitePhone   string
}

// frTitle builds a fresh caser per call; cases.Caser is stateful and must not
// be shared across request goroutines.
func frTitle(s string) string {
	return cases.Title(language.French).String(s)
}

var (
	categoryLabels = map[string]string{
		"general":     "don général",
		"women":       "autonomisation des femmes",
		"children":    "protection des enfants",
		"environment": "protection environnementale",
		"health":      "santé",
		"education":   "éducation",
	}

	frequencyLabels = map[string]string{
		"one-time": "don unique",
		"monthly":  "don mensuel",
	}

	joinTypeLabels = map[string]string{
		"member":    "membre",
		"volunteer": "bénévole",
		"partner":   "partenaire",
	}
)

// CategoryLabel returns the French program label for a donation category,
// title-cased for use in subjects and headings.
func CategoryLabel(category string) string {
	label, ok := categoryLabels[category]
	if !ok {
		label = categoryLabels["general"]
	}
	return frTitle(label)
}

// FrequencyLabel returns the French label for a donation frequency.
func FrequencyLabel(frequency string) string {
	if label, ok := frequencyLabels[frequency]; ok {
		return frTitle(label)
	}
	return frTitle(frequencyLabels["one-time"])
}

// JoinTypeLabel returns the French label for an application role.
func JoinTypeLabel(joinType string) string {
	if label, ok := joinTypeLabels[joinType]; ok {
		return label
	}
	return joinTypeLabels["member"]
}

func (t Templates) footer() string {
	return fmt.Sprintf(`<hr>
<p><small>Ceci est un message automatique. Merci de ne pas y répondre.</small></p>
<p><strong>%s</strong><br>%s<br>%s | %s</p>`,
		html.EscapeString(t.SiteName), html.EscapeString(t.SiteAddress),
		html.EscapeString(t.SiteEmail), html.EscapeString(t.SitePhone))
}

func nl2br(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return html.EscapeString(s)
}

// ContactAck confirms receipt of a contact message to its sender.
func (t Templates) ContactAck(name, message string) (subject, body string) {
	subject = "Confirmation de réception - " + t.SiteName
	body = fmt.Sprintf(`<h2>Merci pour votre message</h2>
<p>Bonjour %s,</p>
<p>Nous avons bien reçu votre message et nous vous répondrons dans les plus brefs délais.</p>
<p><strong>Votre message:</strong></p>
<p>%s</p>
%s`, html.EscapeString(name), nl2br(message), t.footer())
	return subject, body
}

// ContactAlert notifies staff of a new contact message.
func (t Templates) ContactAlert(id int64, name, email, phone, msgSubject, message string) (subject, body string) {
	subject = "Nouveau message de contact - " + t.SiteName
	body = fmt.Sprintf(`<h2>Nouveau message de contact</h2>
<p><strong>Nom:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Téléphone:</strong> %s</p>
<p><strong>Sujet:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
<p><strong>ID du message:</strong> %d</p>`,
		html.EscapeString(name), html.EscapeString(email),
		orDefault(phone, "Non fourni"), orDefault(msgSubject, "Aucun sujet"),
		nl2br(message), id)
	return subject, body
}

// JoinAck confirms receipt of a membership application.
func (t Templates) JoinAck(fullName, email, joinType string, when time.Time) (subject, body string) {
	label := JoinTypeLabel(joinType)
	subject = "Confirmation de candidature - " + t.SiteName
	body = fmt.Sprintf(`<h2>Merci pour votre candidature</h2>
<p>Bonjour %s,</p>
<p>Nous avons bien reçu votre candidature pour devenir %s de %s.</p>
<p>Notre équipe va examiner votre dossier et nous vous contacterons dans les plus brefs délais.</p>
<p><strong>Résumé de votre candidature:</strong></p>
<ul>
<li><strong>Type:</strong> %s</li>
<li><strong>Nom:</strong> %s</li>
<li><strong>Email:</strong> %s</li>
<li><strong>Date de candidature:</strong> %s</li>
</ul>
%s`, html.EscapeString(fullName), label, html.EscapeString(t.SiteName),
		frTitle(label), html.EscapeString(fullName), html.EscapeString(email),
		when.Format("02/01/2006 15:04"), t.footer())
	return subject, body
}

// JoinAlertFields carries the application detail lines for the staff alert.
type JoinAlertFields struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Age          int
	Address      string
	Profession   string
	Organization string
	Motivation   string
	Skills       string
	Availability string
	HearAbout    string
	JoinType     string
	Newsletter   bool
}

// JoinAlert notifies staff of a new membership application.
func (t Templates) JoinAlert(f JoinAlertFields) (subject, body string) {
	label := JoinTypeLabel(f.JoinType)
	age := "Non fourni"
	if f.Age > 0 {
		age = fmt.Sprintf("%d", f.Age)
	}
	newsletter := "Non"
	if f.Newsletter {
		newsletter = "Oui"
	}
	subject = fmt.Sprintf("Nouvelle candidature %s - %s", label, t.SiteName)
	body = fmt.Sprintf(`<h2>Nouvelle candidature %s</h2>
<p><strong>Nom complet:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Téléphone:</strong> %s</p>
<p><strong>Âge:</strong> %s</p>
<p><strong>Adresse:</strong> %s</p>
<p><strong>Profession:</strong> %s</p>
<p><strong>Organisation:</strong> %s</p>
<p><strong>Motivation:</strong></p>
<p>%s</p>
<p><strong>Compétences:</strong></p>
<p>%s</p>
<p><strong>Disponibilité:</strong></p>
<p>%s</p>
<p><strong>Comment nous a-t-il/elle connus:</strong> %s</p>
<p><strong>Newsletter:</strong> %s</p>
<p><strong>ID utilisateur:</strong> %d</p>`,
		frTitle(label), html.EscapeString(f.FullName), html.EscapeString(f.Email),
		html.EscapeString(f.Phone), age, html.EscapeString(f.Address),
		orDefault(f.Profession, "Non fournie"), orDefault(f.Organization, "Non fournie"),
		nl2br(f.Motivation), orDefault(f.Skills, "Non fournies"),
		orDefault(f.Availability, "Non fournie"), orDefault(f.HearAbout, "Non spécifié"),
		newsletter, f.ID)
	return subject, body
}

// NewsletterWelcome greets a brand-new subscriber.
func (t Templates) NewsletterWelcome() (subject, body string) {
	subject = "Bienvenue dans notre communauté ! - " + t.SiteName
	body = fmt.Sprintf(`<h2>Bienvenue dans notre communauté !</h2>
<p>Merci de vous être abonné(e) à la newsletter de %s !</p>
<p>Vous recevrez désormais :</p>
<ul>
<li>Nos dernières actualités et projets</li>
<li>Nos rapports d'activités</li>
<li>Les invitations à nos événements</li>
<li>Les témoignages de nos bénéficiaires</li>
<li>Les opportunités de bénévolat</li>
</ul>
<p>Ensemble, nous pouvons créer un impact positif dans notre communauté.</p>
%s`, html.EscapeString(t.SiteName), t.footer())
	return subject, body
}

// NewsletterResubscribed welcomes back a reactivated subscriber. This is a
// distinct template from the first-time welcome.
func (t Templates) NewsletterResubscribed() (subject, body string) {
	subject = "Bienvenue de retour ! - " + t.SiteName
	body = fmt.Sprintf(`<h2>Bienvenue de retour !</h2>
<p>Nous sommes ravis de vous revoir !</p>
<p>Votre abonnement à la newsletter de %s a été réactivé.</p>
<p>Vous recevrez désormais nos dernières actualités, nos rapports d'activités et nos invitations aux événements.</p>
<p>Merci de votre fidélité !</p>
%s`, html.EscapeString(t.SiteName), t.footer())
	return subject, body
}

// NewsletterAlert notifies staff of a new subscriber.
func (t Templates) NewsletterAlert(id int64, email string, when time.Time) (subject, body string) {
	subject = "Nouvel abonné à la newsletter - " + t.SiteName
	body = fmt.Sprintf(`<h2>Nouvel abonné à la newsletter</h2>
<p><strong>Email:</strong> %s</p>
<p><strong>Date d'abonnement:</strong> %s</p>
<p><strong>ID abonné:</strong> %d</p>`,
		html.EscapeString(email), when.Format("02/01/2006 15:04"), id)
	return subject, body
}

// DonationFields carries the donation detail lines shared by several templates.
type DonationFields struct {
	ID               int64
	DonorName        string
	DonorEmail       string
	Amount           int64
	Category         string
	Frequency        string
	Anonymous        bool
	PaymentReference string
	Notes            string
	When             time.Time
}

// DonationAck thanks a donor right after an offline donation is recorded.
func (t Templates) DonationAck(f DonationFields) (subject, body string) {
	name := f.DonorName
	if strings.TrimSpace(name) == "" {
		name = "Cher donateur"
	}
	subject = "Confirmation de don - " + t.SiteName
	body = fmt.Sprintf(`<h2>Merci pour votre don</h2>
<p>Bonjour %s,</p>
<p>Nous vous remercions chaleureusement pour votre généreux don de <strong>%s FCFA</strong>.</p>
<p><strong>Détails de votre don:</strong></p>
<ul>
<li><strong>Montant:</strong> %s FCFA</li>
<li><strong>Type:</strong> %s</li>
<li><strong>Fréquence:</strong> %s</li>
<li><strong>Référence:</strong> %s</li>
<li><strong>Date:</strong> %s</li>
</ul>
<p>Votre contribution nous aide à continuer nos actions pour l'éducation et le développement durable dans notre communauté.</p>
%s`, html.EscapeString(name), FormatAmount(f.Amount), FormatAmount(f.Amount),
		CategoryLabel(f.Category), FrequencyLabel(f.Frequency),
		html.EscapeString(f.PaymentReference), f.When.Format("02/01/2006 15:04"), t.footer())
	return subject, body
}

// DonationAlert notifies staff of a recorded donation. Donor identity is
// masked when the gift is anonymous.
func (t Templates) DonationAlert(f DonationFields) (subject, body string) {
	anonymous := "Non"
	donorLines := fmt.Sprintf(`<p><strong>Donateur:</strong> %s</p>
<p><strong>Email:</strong> %s</p>`, orDefault(f.DonorName, "Non fourni"), orDefault(f.DonorEmail, "Non fourni"))
	if f.Anonymous {
		anonymous = "Oui"
		donorLines = `<p><strong>Donateur:</strong> Anonyme</p>`
	}
	subject = fmt.Sprintf("Nouveau don reçu - %s FCFA", FormatAmount(f.Amount))
	body = fmt.Sprintf(`<h2>Nouveau don reçu</h2>
<p><strong>Montant:</strong> %s FCFA</p>
<p><strong>Type:</strong> %s</p>
<p><strong>Fréquence:</strong> %s</p>
<p><strong>Anonyme:</strong> %s</p>
%s
<p><strong>Référence de paiement:</strong> %s</p>
<p><strong>Notes:</strong> %s</p>
<p><strong>Date:</strong> %s</p>
<p><strong>ID du don:</strong> %d</p>`,
		FormatAmount(f.Amount), CategoryLabel(f.Category), FrequencyLabel(f.Frequency),
		anonymous, donorLines, html.EscapeString(f.PaymentReference),
		orDefault(f.Notes, "Aucune"), f.When.Format("02/01/2006 15:04"), f.ID)
	return subject, body
}

// DonationConfirmed is the richer post-settlement confirmation sent once the
// payment provider reports success.
func (t Templates) DonationConfirmed(f DonationFields) (subject, body string) {
	name := f.DonorName
	if strings.TrimSpace(name) == "" {
		name = "Cher donateur"
	}
	subject = "Confirmation de votre don - " + t.SiteName
	body = fmt.Sprintf(`<h1>🌍 %s</h1>
<h2>Merci pour votre générosité !</h2>
<p>Bonjour %s,</p>
<p>Nous vous remercions chaleureusement pour votre don de <strong>%s FCFA</strong>.</p>
<h3>Détails de votre don :</h3>
<ul>
<li><strong>Montant :</strong> %s FCFA</li>
<li><strong>Type :</strong> %s</li>
<li><strong>Fréquence :</strong> %s</li>
<li><strong>Référence :</strong> %s</li>
<li><strong>Date :</strong> %s</li>
<li><strong>Statut :</strong> Confirmé</li>
</ul>
<p>Votre contribution nous permet de continuer nos actions pour :</p>
<ul>
<li>✅ L'autonomisation des femmes par la formation</li>
<li>✅ La protection des enfants vulnérables</li>
<li>✅ La lutte contre les violences basées sur le genre</li>
<li>✅ La protection de l'environnement</li>
<li>✅ L'éducation et le développement durable</li>
</ul>
<h4>💚 L'impact de votre don</h4>
<p>Grâce à votre générosité, nous pouvons transformer des vies et construire un avenir meilleur pour notre communauté au Bénin.</p>
<p>Nous vous tiendrons informé(e) de l'utilisation de votre don et de l'impact généré.</p>
<p>Avec toute notre reconnaissance,<br><strong>L'équipe %s</strong></p>
%s`, html.EscapeString(t.SiteName), html.EscapeString(name),
		FormatAmount(f.Amount), FormatAmount(f.Amount),
		CategoryLabel(f.Category), FrequencyLabel(f.Frequency),
		html.EscapeString(f.PaymentReference), f.When.Format("02/01/2006 15:04"),
		html.EscapeString(t.SiteName), t.footer())
	return subject, body
}

// DonationFailed tells a donor their payment did not go through.
func (t Templates) DonationFailed(donorName string) (subject, body string) {
	name := donorName
	if strings.TrimSpace(name) == "" {
		name = "Cher donateur"
	}
	subject = "Problème avec votre don - " + t.SiteName
	body = fmt.Sprintf(`<h2>Problème avec votre don</h2>
<p>Bonjour %s,</p>
<p>Nous avons rencontré un problème lors du traitement de votre don.</p>
<p>Veuillez réessayer ou nous contacter si le problème persiste.</p>
<p>Merci pour votre compréhension.</p>
%s`, html.EscapeString(name), t.footer())
	return subject, body
}
