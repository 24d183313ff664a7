package clients

import (
	"fmt"
	"net/url"
	"strings"

	"coffeeshop/internal/domain"
	"coffeeshop/pkg/pricing"

	"github.com/sirupsen/logrus"
)

// OrderNotifier builds the best-effort handoff for a committed order. The
// link is handed to the shopper's browser; nothing waits on delivery and a
// broken handoff never touches the persisted order.
type OrderNotifier interface {
	OrderHandoffLink(order *domain.Order) string
}

type whatsAppNotifier struct {
	phone string
	log   *logrus.Logger
}

// NewWhatsAppNotifier targets the shop's fixed WhatsApp number.
func NewWhatsAppNotifier(phone string, logger *logrus.Logger) OrderNotifier {
	return &whatsAppNotifier{
		phone: phone,
		log:   logger,
	}
}

func (n *whatsAppNotifier) OrderHandoffLink(order *domain.Order) string {
	message := OrderMessage(order)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", n.phone, url.QueryEscape(message))

	n.log.Infof("WhatsApp: Built handoff link for order %d (%d items)", order.ID, len(order.Items))
	return link
}

// OrderMessage renders the human-readable order summary sent to the shop's
// WhatsApp: itemized lines with per-line subtotals, the grand total and the
// customer block.
func OrderMessage(order *domain.Order) string {
	var b strings.Builder

	b.WriteString("Halo, pesanan baru via Web:\n\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s x%d = %s\n", item.Name, item.Quantity, pricing.FormatIDR(item.Subtotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\n", pricing.FormatIDR(order.TotalPrice))

	b.WriteString("Data Pemesan:\n")
	fmt.Fprintf(&b, "Nama: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Alamat: %s\n", order.CustomerAddress)
	fmt.Fprintf(&b, "Metode: %s", paymentLabel(order.PaymentMethod))

	return b.String()
}

func paymentLabel(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentTransfer:
		return "Transfer Bank"
	case domain.PaymentCOD:
		return "COD (Cash on Delivery)"
	default:
		return string(method)
	}
}
