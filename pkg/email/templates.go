package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	tmplAdminWelcome         = "admin_welcome"
	tmplRecruiterWelcome     = "recruiter_welcome"
	tmplWorkerWelcome        = "worker_welcome"
	tmplSubscription         = "subscription_welcome"
	tmplApplicationReceived  = "application_received"
	tmplAssignmentConfirmed  = "assignment_confirmed"
	tmplConnectionRequested  = "connection_requested"
	tmplConnectionApprovedRc = "connection_approved_recruiter"
	tmplConnectionApprovedWk = "connection_approved_worker"
	tmplConnectionRejected   = "connection_rejected"
)

// Links are the public URLs referenced from email bodies.
type Links struct {
	FrontendURL       string
	AdminDashboardURL string
	SupportEmail      string
}

type welcomeData struct {
	Links
	Name          string
	RecruiterType string
}

type applicationData struct {
	Links
	RecruiterName string
	JobTitle      string
	WorkerName    string
	Message       string
}

type assignmentData struct {
	Links
	WorkerName    string
	JobTitle      string
	RecruiterName string
	Location      string
	WorkDate      *time.Time
	StartTime     *time.Time
	EndTime       *time.Time
	Instruction   string
}

type personData struct {
	Name    string
	Email   string
	Company string
}

type connectionData struct {
	Links
	AdminName  string
	Recruiter  personData
	Worker     personData
	Message    string
	AdminNotes string
	CreatedAt  time.Time
}

var templateFuncs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return "N/A"
		}
		return t.Format("Monday, 2 January 2006")
	},
	"clock": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("15:04")
	},
	"stamp": func(t time.Time) string {
		return t.Format("2 Jan 2006 15:04 MST")
	},
	"orDefault": func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	},
}

const layouts = `
{{define "header"}}<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">{{end}}

{{define "footer"}}
<p style="color: #7f8c8d; font-size: 14px; border-top: 1px solid #e0e0e0; padding-top: 20px;">
Best regards,<br><strong>The CareBridge Team</strong>
</p>
<p style="color: #999; font-size: 12px;">Questions? Contact us at <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a>.</p>
</div>
</body>
</html>{{end}}

{{define "button"}}<div style="text-align: center; margin: 25px 0;">
<a href="{{.URL}}" style="background-color:#4a6bff; color:white; padding:12px 30px; text-decoration:none; border-radius:8px; font-weight:600;">{{.Label}}</a>
</div>{{end}}
`

const bodies = `
{{define "admin_welcome"}}{{template "header" .}}
<h1 style="color: #4a6bff;">Welcome Admin {{.Name}}!</h1>
<p>Congratulations! You have been granted administrative access to the CareBridge platform.</p>
<p>As an administrator you can manage users, verify recruiters, review connection requests and keep the marketplace healthy for recruiters and workers alike.</p>
{{template "button" (button (print .FrontendURL "/dashboard/admin") "Open Admin Dashboard")}}
{{template "footer" .}}{{end}}

{{define "recruiter_welcome"}}{{template "header" .}}
<h1 style="color: #4a6bff;">Welcome {{.Name}}!</h1>
<p>Thank you for joining CareBridge as a <strong>{{.RecruiterType}}</strong>. You're now part of a platform that connects you with qualified workers across various industries.</p>
<p><strong>Next Steps:</strong></p>
<p>1. Complete your recruiter profile<br>2. Post your first job<br>3. Review applications from workers</p>
{{template "button" (button (print .FrontendURL "/dashboard/recruiter") "Go to Dashboard")}}
<p>Best of luck with your hiring!</p>
{{template "footer" .}}{{end}}

{{define "worker_welcome"}}{{template "header" .}}
<h1 style="color: #4a6bff;">Welcome {{.Name}}!</h1>
<p>Congratulations on joining CareBridge! You're now part of a community where skilled professionals connect with great job opportunities.</p>
<p><strong>Pro Tips for Success:</strong></p>
<p>&bull; Complete your profile with skills and experience<br>&bull; Keep your availability up to date<br>&bull; Apply early to urgent jobs</p>
{{template "button" (button (print .FrontendURL "/jobs") "Browse Jobs")}}
<p>Best of luck in your job search!</p>
{{template "footer" .}}{{end}}

{{define "subscription_welcome"}}{{template "header" .}}
<h1 style="color: #4a6bff;">Thank You{{if .Name}} {{.Name}}{{end}}!</h1>
<p>You've successfully subscribed to CareBridge updates. We'll keep you informed about the latest features, job opportunities and platform improvements.</p>
{{template "button" (button (print .FrontendURL "/register") "Create an Account")}}
<p style="font-size: 12px; color: #999;">No longer interested? Unsubscribe <a href="{{.FrontendURL}}/unsubscribe" style="color: #4a6bff;">here</a>.</p>
{{template "footer" .}}{{end}}

{{define "application_received"}}{{template "header" .}}
<h1 style="color: #4a6bff;">New Job Application Received!</h1>
<p>Hello {{.RecruiterName}},</p>
<p>Great news! You have received a new application for your job posting.</p>
<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
<p><strong>Job Title:</strong> {{.JobTitle}}</p>
<p><strong>Applicant:</strong> {{.WorkerName}}</p>
{{if .Message}}<p><strong>Message:</strong></p>
<div style="background-color: white; padding: 15px; border-radius: 5px; font-style: italic;">"{{.Message}}"</div>{{end}}
</div>
{{template "button" (button (print .FrontendURL "/dashboard/recruiter/applications") "Review Application")}}
<p>Happy hiring!</p>
{{template "footer" .}}{{end}}

{{define "assignment_confirmed"}}{{template "header" .}}
<h1 style="color: #28a745;">Work Assignment Confirmed!</h1>
<p>Hello {{.WorkerName}},</p>
<p>Congratulations! You have been assigned to a new work opportunity.</p>
<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
<p><strong>Job:</strong> {{.JobTitle}}</p>
<p><strong>Recruiter:</strong> {{.RecruiterName}}</p>
{{if .Location}}<p><strong>Location:</strong> {{.Location}}</p>{{end}}
{{if .WorkDate}}<p><strong>Date:</strong> {{date .WorkDate}}</p>{{end}}
{{if .StartTime}}<p><strong>Start Time:</strong> {{clock .StartTime}}</p>{{end}}
{{if .EndTime}}<p><strong>End Time:</strong> {{clock .EndTime}}</p>{{end}}
{{if .Instruction}}<p>{{.Instruction}}</p>{{end}}
</div>
{{template "button" (button (print .FrontendURL "/dashboard/worker/assignments") "View Assignment")}}
<p>Best of luck!</p>
{{template "footer" .}}{{end}}

{{define "connection_requested"}}{{template "header" .}}
<h1 style="color: #4a6bff; margin-bottom: 5px;">New Connection Request</h1>
<p style="color: #7f8c8d;">Submitted {{stamp .CreatedAt}}</p>
{{if .AdminName}}<p>Hello {{.AdminName}},</p>{{end}}
<h2 style="color: #333; border-bottom: 1px solid #e0e0e0; padding-bottom: 10px;">Request Details</h2>
<h3>Recruiter</h3>
<p><strong>Name:</strong> {{.Recruiter.Name}}<br>
<strong>Company:</strong> {{orDefault .Recruiter.Company "Not specified"}}<br>
<strong>Email:</strong> {{.Recruiter.Email}}</p>
<h3>Worker</h3>
<p><strong>Name:</strong> {{.Worker.Name}}<br>
<strong>Email:</strong> {{.Worker.Email}}</p>
{{if .Message}}<p><strong>Recruiter's message:</strong></p><p style="font-style: italic;">"{{.Message}}"</p>{{end}}
{{template "button" (button (print .AdminDashboardURL "/connections/pending") "Review Request")}}
<p style="font-size: 12px; color: #999;">This is an automated notification. Please do not reply directly to this email.</p>
{{template "footer" .}}{{end}}

{{define "connection_approved_recruiter"}}{{template "header" .}}
<h1 style="color: #4a6bff;">Connection Approved!</h1>
<p>Hello {{.Recruiter.Name}},</p>
<p>Your connection request to <strong>{{.Worker.Name}}</strong> has been approved by the admin.</p>
<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
<h3 style="color: #4a6bff;">Next Steps</h3>
<ul><li>Contact the worker to discuss details</li><li>Create a job posting if needed</li><li>Manage your connection through your dashboard</li></ul>
<p><strong>Worker email:</strong> {{.Worker.Email}}</p>
{{if .Message}}<p><strong>Your original message:</strong></p><p style="font-style: italic;">"{{.Message}}"</p>{{end}}
</div>
{{template "button" (button (print .FrontendURL "/") "View Connection")}}
{{template "footer" .}}{{end}}

{{define "connection_approved_worker"}}{{template "header" .}}
<h1 style="color: #4a6bff;">New Connection Approved!</h1>
<p>Hello {{.Worker.Name}},</p>
<p>You have been connected with <strong>{{.Recruiter.Name}}</strong> from <strong>{{orDefault .Recruiter.Company "a company"}}</strong>.</p>
<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
<h3 style="color: #4a6bff;">What This Means</h3>
<ul><li>The recruiter may contact you about potential opportunities</li><li>You can view their details in your connections</li><li>You're not obligated to accept any specific offer</li></ul>
{{if .Message}}<p><strong>Recruiter's message:</strong></p><p style="font-style: italic;">"{{.Message}}"</p>{{end}}
</div>
{{template "button" (button (print .FrontendURL "/dashboard/worker/connections") "View Connection")}}
{{template "footer" .}}{{end}}

{{define "connection_rejected"}}{{template "header" .}}
<h1 style="color: #4a6bff;">Connection Not Approved</h1>
<p>Hello {{.Recruiter.Name}},</p>
<p>We regret to inform you that your connection request to <strong>{{.Worker.Name}}</strong> was not approved by the admin.</p>
<div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
{{if .AdminNotes}}<h3 style="color: #4a6bff;">Admin Notes</h3><p style="font-style: italic;">"{{.AdminNotes}}"</p>{{end}}
<h3 style="color: #4a6bff;">Next Steps</h3>
<ul><li>You may browse other qualified workers</li><li>Consider adjusting your search criteria</li><li>Contact support if you have questions</li></ul>
</div>
{{template "button" (button (print .FrontendURL "/") "Browse Workers")}}
{{template "footer" .}}{{end}}
`

type buttonData struct {
	URL   string
	Label string
}

// Templates holds the parsed email bodies.
type Templates struct {
	set *template.Template
}

func NewTemplates() (*Templates, error) {
	funcs := template.FuncMap{
		"button": func(url, label string) buttonData { return buttonData{URL: url, Label: label} },
	}
	for name, fn := range templateFuncs {
		funcs[name] = fn
	}

	set, err := template.New("email").Funcs(funcs).Parse(layouts + bodies)
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Templates{set: set}, nil
}

func (t *Templates) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
