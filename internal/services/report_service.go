package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"ca-backend/internal/models"
	"ca-backend/internal/repositories"
	"ca-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

const reportPageSize = 500

// ReportService generates downloadable exports for the back office.
type ReportService struct {
	CustomerRepo *repositories.CustomerRepository
	TicketRepo   *repositories.ServiceTicketRepository
}

func NewReportService(customerRepo *repositories.CustomerRepository, ticketRepo *repositories.ServiceTicketRepository) *ReportService {
	return &ReportService{CustomerRepo: customerRepo, TicketRepo: ticketRepo}
}

// CustomerCSV exports the filtered customer list as CSV.
func (s *ReportService) CustomerCSV(ctx context.Context, f models.CustomerFilter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"ID", "First Name", "Last Name", "Email", "Phone", "PAN", "Type", "Source", "Created"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	offset := 0
	for {
		customers, _, err := s.CustomerRepo.List(ctx, f, reportPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			record := []string{
				strconv.Itoa(c.ID),
				c.FirstName,
				c.LastName,
				c.Email,
				c.Phone,
				c.PANCard,
				c.CustomerType,
				c.Source,
				timeutil.FormatIST(c.CreatedAt, timeutil.DateLayout),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		if len(customers) < reportPageSize {
			break
		}
		offset += reportPageSize
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CustomerPDF renders a one-page summary for a single customer, including
// their open engagements.
func (s *ReportService) CustomerPDF(ctx context.Context, customerID int) ([]byte, error) {
	customer, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	tickets, _, err := s.TicketRepo.List(ctx, models.TicketFilter{CustomerID: customerID}, reportPageSize, 0)
	if err != nil {
		tickets = nil
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Customer Summary", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatIST(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s %s", customer.FirstName, customer.LastName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Type: %s", customer.CustomerType), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", customer.Email), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", customer.Phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("PAN: %s", customer.PANCard), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Source: %s", customer.Source), "RB", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Engagements", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 7, "ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Subject", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Due", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(tickets) == 0 {
		pdf.CellFormat(190, 7, "No engagements on record", "1", 1, "C", false, 0, "")
	}
	for _, t := range tickets {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("02-Jan-2006")
		}
		pdf.CellFormat(20, 7, strconv.Itoa(t.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 7, t.Subject, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, t.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, due, "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
