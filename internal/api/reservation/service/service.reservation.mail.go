package reservationsvc

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/doilonvl/salathai-be-demo/internal/api/reservation/models"
	"github.com/doilonvl/salathai-be-demo/internal/common"
	"github.com/doilonvl/salathai-be-demo/internal/delivery/channels"
	"github.com/doilonvl/salathai-be-demo/internal/logger"
	"github.com/doilonvl/salathai-be-demo/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mailTimeout thời gian tối đa cho một lần gửi email nền
const mailTimeout = 30 * time.Second

// Mailer gửi email tới quản trị
type Mailer interface {
	Send(ctx context.Context, e channels.Email) error
}

// MarkFunc đánh dấu bản ghi đã gửi email
type MarkFunc func(ctx context.Context, id primitive.ObjectID) (*models.ReservationRequest, error)

// Notifier gửi email cho một yêu cầu vừa tạo
type Notifier struct {
	mailer  Mailer
	enforce bool
	mark    MarkFunc
	// async chạy công việc nền
	async func(f func())
}

// NewNotifier enforce=true thì gửi đồng bộ trong request
func NewNotifier(mailer Mailer, enforce bool, mark MarkFunc) *Notifier {
	return &Notifier{
		mailer:  mailer,
		enforce: enforce,
		mark:    mark,
		async:   func(f func()) { go utility.GoProtect(f) },
	}
}

// Notify enforce thì lỗi gửi trả ErrMailDelivery và bản ghi giữ trạng thái new.
// Mặc định gửi nền, lỗi chỉ ghi log, response trả ngay bản ghi trạng thái new.
func (n *Notifier) Notify(ctx context.Context, r *models.ReservationRequest) (*models.ReservationRequest, error) {
	mail := RenderReservationEmail(r)
	log := logger.WithModule("reservation").WithField("reservation_id", r.ID.Hex())

	if n.enforce {
		if err := n.mailer.Send(ctx, mail); err != nil {
			log.WithError(err).Error("Gửi email đặt bàn thất bại")
			return nil, common.WithDetails(common.ErrMailDelivery, err.Error())
		}
		return n.mark(ctx, r.ID)
	}

	id := r.ID
	n.async(func() {
		bg, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := n.mailer.Send(bg, mail); err != nil {
			log.WithError(err).Warn("Gửi email đặt bàn thất bại")
			return
		}
		if _, err := n.mark(bg, id); err != nil {
			log.WithError(err).Warn("Không cập nhật được trạng thái emailed")
		}
	})
	return r, nil
}

type mailRow struct {
	Label string
	Value string
}

var mailTemplate = template.Must(template.New("reservation").Parse(`<h2>New reservation request</h2>
<table cellpadding="6" cellspacing="0" border="1" style="border-collapse:collapse">
{{- range .}}
<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
`))

// rows field tùy chọn rỗng thì bỏ
func rows(r *models.ReservationRequest) []mailRow {
	out := []mailRow{
		{"Full name", r.FullName},
		{"Phone", r.PhoneNumber},
	}
	if r.Email != "" {
		out = append(out, mailRow{"Email", r.Email})
	}
	out = append(out,
		mailRow{"Guests", fmt.Sprint(r.GuestCount)},
		mailRow{"Date", r.ReservationDate.UTC().Format("2006-01-02")},
		mailRow{"Time", r.ReservationTime},
	)
	if r.Source != "" {
		out = append(out, mailRow{"Source", r.Source})
	}
	if r.Note != "" {
		out = append(out, mailRow{"Note", r.Note})
	}
	return out
}

// RenderReservationEmail subject, bảng HTML đã escape và bản text. Reply-To là email khách
func RenderReservationEmail(r *models.ReservationRequest) channels.Email {
	list := rows(r)

	var html bytes.Buffer
	if err := mailTemplate.Execute(&html, list); err != nil {
		// template cố định, chỉ lỗi khi writer lỗi
		logger.WithModule("reservation").WithError(err).Error("Render email đặt bàn thất bại")
	}

	var text strings.Builder
	text.WriteString("New reservation request\n\n")
	for _, row := range list {
		fmt.Fprintf(&text, "%s: %s\n", row.Label, row.Value)
	}

	return channels.Email{
		ReplyTo: r.Email,
		Subject: "[Salathai] New reservation from " + r.FullName,
		HTML:    html.String(),
		Text:    text.String(),
	}
}
