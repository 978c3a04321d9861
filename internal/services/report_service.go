package services

import (
	"sort"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/repositories"
)

// PaymentBreakdown aggregates one payment method's share of a day.
type PaymentBreakdown struct {
	Orders int   `json:"orders"`
	Amount int64 `json:"amount"`
}

// ProductSales aggregates one product's sales for a day.
type ProductSales struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

// DailyReport is the sales summary for one calendar day. Cancelled orders are
// excluded from every figure.
type DailyReport struct {
	Date         string                                   `json:"date"`
	OrderCount   int                                      `json:"order_count"`
	Revenue      int64                                    `json:"revenue"`
	TaxCollected int64                                    `json:"tax_collected"`
	Payments     map[models.PaymentMethod]PaymentBreakdown `json:"payments"`
	TopProducts  []ProductSales                           `json:"top_products"`
}

const topProductsLimit = 5

// ReportService builds sales summaries over persisted orders.
type ReportService struct {
	orderRepo repositories.OrderRepository
}

// NewReportService creates a new ReportService.
func NewReportService(orderRepo repositories.OrderRepository) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
	}
}

// DailySummary summarizes the orders created on the given calendar day.
func (s *ReportService) DailySummary(day time.Time) (*DailyReport, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	orders, err := s.orderRepo.FindByCreatedRange(from, to)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:        from.Format("2006-01-02"),
		Payments:    make(map[models.PaymentMethod]PaymentBreakdown),
		TopProducts: []ProductSales{},
	}
	byProduct := make(map[string]*ProductSales)

	for _, order := range orders {
		if order.Status == models.StatusCancelled {
			continue
		}
		report.OrderCount++
		report.Revenue += order.TotalAmount
		report.TaxCollected += order.TaxAmount

		breakdown := report.Payments[order.PaymentMethod]
		breakdown.Orders++
		breakdown.Amount += order.TotalAmount
		report.Payments[order.PaymentMethod] = breakdown

		for _, item := range order.Items {
			sales, ok := byProduct[item.ProductID]
			if !ok {
				sales = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = sales
			}
			sales.Quantity += item.Quantity
			sales.Revenue += item.Subtotal
		}
	}

	for _, sales := range byProduct {
		report.TopProducts = append(report.TopProducts, *sales)
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		if report.TopProducts[i].Quantity != report.TopProducts[j].Quantity {
			return report.TopProducts[i].Quantity > report.TopProducts[j].Quantity
		}
		return report.TopProducts[i].Name < report.TopProducts[j].Name
	})
	if len(report.TopProducts) > topProductsLimit {
		report.TopProducts = report.TopProducts[:topProductsLimit]
	}

	return report, nil
}
