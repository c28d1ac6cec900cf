// Package usecase はカタログの定期レポート（ダイジェストメール）を組み立てて送信します。
package usecase

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"catalog_backend/internal/feature/digest/domain/entity"
)

// Subject はダイジェストメールの件名です。
const Subject = "Catalog report"

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// ErrNoRecipients は送信先が1件もない場合に返されます。
var ErrNoRecipients = errors.New("digest: no recipients configured")

// ReportSource は集計データの取得元を抽象化します。
type ReportSource interface {
	Collect(ctx context.Context) (entity.Report, error)
}

// Mailer はHTMLメールを送信します。
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
}

type digestUsecase struct {
	source     ReportSource
	mailer     Mailer
	recipients []string
	now        func() time.Time
}

// NewDigestUsecase はdigestUsecaseを生成します。
func NewDigestUsecase(source ReportSource, mailer Mailer, recipients []string) *digestUsecase {
	return &digestUsecase{source: source, mailer: mailer, recipients: recipients, now: time.Now}
}

// Build は現在の集計値を取得し、HTMLとして描画します。
func (u *digestUsecase) Build(ctx context.Context) (string, error) {
	rep, err := u.source.Collect(ctx)
	if err != nil {
		return "", err
	}
	rep.GeneratedAt = u.now().UTC()
	return Render(rep)
}

// Send はレポートを組み立てて全送信先へ送ります。
func (u *digestUsecase) Send(ctx context.Context) error {
	if len(u.recipients) == 0 {
		return ErrNoRecipients
	}
	body, err := u.Build(ctx)
	if err != nil {
		return err
	}
	if err := u.mailer.Send(u.recipients, Subject, body); err != nil {
		return err
	}
	slog.Info("digest sent", "recipients", len(u.recipients))
	return nil
}

// Render はレポートのテンプレートを実行します。
func Render(rep entity.Report) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Title  string
		Report entity.Report
	}{Subject, rep}
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}
