package email

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/logger"
	"carebridge-backend/pkg/security"
)

const defaultSendTimeout = 30 * time.Second

// Dispatcher renders notification emails and delivers them in the background.
// Delivery failures are logged and never reach the caller.
type Dispatcher struct {
	sender    Sender
	templates *Templates
	links     Links
	timeout   time.Duration
	wg        sync.WaitGroup
}

var _ domain.Notifier = (*Dispatcher)(nil)

func NewDispatcher(sender Sender, links Links) (*Dispatcher, error) {
	templates, err := NewTemplates()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		sender:    sender,
		templates: templates,
		links:     links,
		timeout:   defaultSendTimeout,
	}, nil
}

// Wait blocks until every queued email has been attempted or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) dispatch(to, subject, tmpl string, data any) {
	if to == "" {
		return
	}

	body, err := d.templates.Render(tmpl, data)
	if err != nil {
		logger.Log.Error("Failed to render email", "template", tmpl, "error", err)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		msg := Message{To: to, Subject: subject, HTML: body}
		if err := d.sender.Send(ctx, msg); err != nil {
			logger.Log.Error("Failed to send email",
				"template", tmpl,
				"to", security.MaskEmail(to),
				"error", err,
			)
			return
		}
		logger.Log.Debug("Email sent", "template", tmpl, "to", security.MaskEmail(to))
	}()
}

func (d *Dispatcher) SendWelcome(user *domain.User, recruiterType domain.RecruiterType) {
	if user == nil {
		return
	}

	data := welcomeData{Links: d.links, Name: user.FullName()}
	switch user.Role {
	case domain.RoleAdmin:
		d.dispatch(user.Email, "Welcome to CareBridge - Admin Access Granted!", tmplAdminWelcome, data)
	case domain.RoleRecruiter:
		data.RecruiterType = recruiterType.Label()
		d.dispatch(user.Email, "Welcome to CareBridge - Start Finding Top Talent!", tmplRecruiterWelcome, data)
	default:
		d.dispatch(user.Email, "Welcome to CareBridge - Your Next Opportunity Awaits!", tmplWorkerWelcome, data)
	}
}

func (d *Dispatcher) SendSubscriptionWelcome(email, name string) {
	d.dispatch(email, "Thank You for Subscribing to CareBridge Updates!", tmplSubscription,
		welcomeData{Links: d.links, Name: name})
}

func (d *Dispatcher) SendJobApplicationReceived(recruiter *domain.UserSummary, job *domain.Job, worker *domain.WorkerSummary, message *string) {
	if recruiter == nil || job == nil {
		return
	}

	data := applicationData{
		Links:         d.links,
		RecruiterName: recruiter.FullName(),
		JobTitle:      job.Title,
		WorkerName:    workerName(worker),
	}
	if message != nil {
		data.Message = *message
	}
	d.dispatch(recruiter.Email, fmt.Sprintf("New Application: %s", job.Title), tmplApplicationReceived, data)
}

func (d *Dispatcher) SendWorkAssignmentConfirmed(worker *domain.UserSummary, notice domain.WorkAssignmentNotice) {
	if worker == nil {
		return
	}

	data := assignmentData{
		Links:         d.links,
		WorkerName:    worker.FullName(),
		JobTitle:      notice.JobTitle,
		RecruiterName: notice.Recruiter,
		Location:      notice.Location,
		WorkDate:      notice.WorkDate,
		StartTime:     notice.StartTime,
		EndTime:       notice.EndTime,
		Instruction:   notice.Instruction,
	}
	d.dispatch(worker.Email, fmt.Sprintf("Work Assignment Confirmed: %s", notice.JobTitle), tmplAssignmentConfirmed, data)
}

func (d *Dispatcher) SendNewConnectionRequest(admins []domain.User, request *domain.ConnectionRequest) {
	if request == nil {
		return
	}

	base := d.connectionData(request)
	subject := fmt.Sprintf("New Connection Request: %s → %s", base.Recruiter.Name, base.Worker.Name)
	for i := range admins {
		data := base
		data.AdminName = admins[i].FullName()
		d.dispatch(admins[i].Email, subject, tmplConnectionRequested, data)
	}
}

// SendConnectionApproved notifies both the recruiter and the worker.
func (d *Dispatcher) SendConnectionApproved(request *domain.ConnectionRequest) {
	if request == nil {
		return
	}

	data := d.connectionData(request)
	d.dispatch(data.Recruiter.Email, fmt.Sprintf("Connection Approved: %s", data.Worker.Name),
		tmplConnectionApprovedRc, data)

	company := "a company"
	if request.Recruiter != nil {
		company = request.Recruiter.DisplayName()
	}
	d.dispatch(data.Worker.Email, fmt.Sprintf("New Connection: %s from %s", data.Recruiter.Name, company),
		tmplConnectionApprovedWk, data)
}

func (d *Dispatcher) SendConnectionRejected(request *domain.ConnectionRequest) {
	if request == nil {
		return
	}

	data := d.connectionData(request)
	d.dispatch(data.Recruiter.Email, "Connection Request Not Approved", tmplConnectionRejected, data)
}

func (d *Dispatcher) connectionData(request *domain.ConnectionRequest) connectionData {
	data := connectionData{
		Links:     d.links,
		CreatedAt: request.CreatedAt,
	}
	if request.Message != nil {
		data.Message = *request.Message
	}
	if request.AdminNotes != nil {
		data.AdminNotes = *request.AdminNotes
	}

	if r := request.Recruiter; r != nil {
		if r.CompanyName != nil {
			data.Recruiter.Company = *r.CompanyName
		}
		if r.User != nil {
			data.Recruiter.Name = r.User.FullName()
			data.Recruiter.Email = r.User.Email
		}
	}
	if w := request.Worker; w != nil && w.User != nil {
		data.Worker.Name = w.User.FullName()
		data.Worker.Email = w.User.Email
	}
	return data
}

func workerName(worker *domain.WorkerSummary) string {
	if worker == nil || worker.User == nil {
		return "A worker"
	}
	return worker.User.FullName()
}
