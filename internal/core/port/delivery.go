package port

import (
	"context"

	"github.com/grocify/account-guard/internal/core/domain"
)

// CodeDeliveryChannel hands a one-time code to an external delivery system
// (SMTP relay, SMS gateway). The destination is an email address or phone
// number depending on the implementation.
type CodeDeliveryChannel interface {
	Send(ctx context.Context, destination, code string) error
}

// PhoneVerifyGateway fronts a third-party phone verification service that
// issues and checks codes itself. Check may report pending, meaning the code
// has not matched yet but the verification is still open.
type PhoneVerifyGateway interface {
	Start(ctx context.Context, phone string) error
	Check(ctx context.Context, phone, code string) (domain.VerifyStatus, error)
}

// AdminNotifier reaches a system administrator. Used only when an operation
// keeps failing with infrastructure faults.
type AdminNotifier interface {
	Notify(ctx context.Context, message string) error
}
