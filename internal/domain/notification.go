package domain

import "time"

// WorkAssignmentNotice describes the work a worker has been confirmed for.
type WorkAssignmentNotice struct {
	JobTitle    string
	Location    string
	Recruiter   string
	WorkDate    *time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Instruction string
}

// Notifier delivers transactional email. Every method returns immediately;
// delivery happens in the background and failures are only logged.
type Notifier interface {
	SendWelcome(user *User, recruiterType RecruiterType)
	SendSubscriptionWelcome(email, name string)
	SendJobApplicationReceived(recruiter *UserSummary, job *Job, worker *WorkerSummary, message *string)
	SendWorkAssignmentConfirmed(worker *UserSummary, notice WorkAssignmentNotice)
	SendNewConnectionRequest(admins []User, request *ConnectionRequest)
	SendConnectionApproved(request *ConnectionRequest)
	SendConnectionRejected(request *ConnectionRequest)
}
