package notify

import (
	"fmt"
	"strings"

	"github.com/clerin-codes/canvas/internal/orders"
)

// shortOrderRef: 8 karakter terakhir order id, uppercased, untuk subject email.
func shortOrderRef(orderID string) string {
	id := strings.ReplaceAll(orderID, "-", "")
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

func ConfirmationSubject(p orders.OrderConfirmedPayload) string {
	return fmt.Sprintf("Order Confirmed - Order #%s", shortOrderRef(p.OrderID))
}

func ConfirmationPlain(p orders.OrderConfirmedPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for shopping with Canvas!\n\n")
	fmt.Fprintf(&b, "Order ID: #%s\n", shortOrderRef(p.OrderID))
	fmt.Fprintf(&b, "Order Date: %s\n", p.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Status: confirmed\n\nYour Items:\n")
	for _, ln := range p.Lines {
		fmt.Fprintf(&b, "- %s (size %s) x%d @ $%s\n", ln.ProductName, ln.Size, ln.Quantity, ln.Price)
	}
	fmt.Fprintf(&b, "\nTotal Amount: $%s\n\n", p.TotalAmount)
	fmt.Fprintf(&b, "We're preparing your order for shipment. You'll receive a shipping\nconfirmation email with tracking details soon.\n\n")
	fmt.Fprintf(&b, "Questions about your order? Contact us at support@canvasclothing.com\n")
	return b.String()
}

func ConfirmationHTML(p orders.OrderConfirmedPayload) string {
	var rows strings.Builder
	for _, ln := range p.Lines {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%d</td><td>$%s</td></tr>",
			ln.ProductName, ln.Size, ln.Quantity, ln.Price)
	}
	return fmt.Sprintf(`<div>
<h1>Order Confirmed</h1>
<p>Thank you for shopping with Canvas.</p>
<p><strong>Order ID:</strong> #%s<br><strong>Order Date:</strong> %s</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Product</th><th>Size</th><th>Qty</th><th>Price</th></tr>
%s
<tr><td colspan="3"><strong>Total</strong></td><td><strong>$%s</strong></td></tr>
</table>
<p>Questions about your order? Contact us at support@canvasclothing.com</p>
</div>`, shortOrderRef(p.OrderID), p.CreatedAt.Format("January 2, 2006"), rows.String(), p.TotalAmount)
}

func OTPSubject() string { return "OTP for Registration" }

func OTPPlain(otp string) string {
	return fmt.Sprintf("Your OTP: %s\nValid for 10 minutes.\n", otp)
}

func OTPHTML(otp string) string {
	return fmt.Sprintf("<h1>Your OTP: %s</h1><p>Valid for 10 minutes</p>", otp)
}
