package enrollment

import (
	"net/mail"
	texttmpl "text/template"

	"github.com/trezcool/coursebook/core"
	"github.com/trezcool/coursebook/core/course"
	"github.com/trezcool/coursebook/core/session"
)

var (
	enrolledSubject = "Enrollment Successful"
	enrolledTmpl    = texttmpl.Must(texttmpl.New("enrolled").Parse(
		`You have been enrolled in {{.Code}} - {{.Name}}.

Instructor: {{.Instructor}}
Schedule:   {{.Schedule}}
Credits:    {{.Credits}}
Fee:        {{.Fee}}
`))

	droppedSubject = "Course Dropped"
	droppedTmpl    = texttmpl.Must(texttmpl.New("dropped").Parse(
		`You have been removed from {{.Code}} - {{.Name}}.
`))
)

func newMessage(to mail.Address, subject string, tmpl *texttmpl.Template, c course.Course) *core.EmailMessage {
	return &core.EmailMessage{
		To:       []mail.Address{to},
		Subject:  subject,
		Template: tmpl,
		Data:     c,
	}
}

// notify mails the session about an enrollment change, if it has a valid email address.
func (l *ledger) notify(sess session.Session, subject string, tmpl *texttmpl.Template, c course.Course) {
	if l.mailSvc == nil {
		return
	}
	to, ok := sess.MailAddress()
	if !ok {
		return
	}
	l.mailSvc.SendMessages(newMessage(to, subject, tmpl, c))
}
