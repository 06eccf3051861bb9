package mail

import (
	"fmt"
	"html"
)

// Message is a rendered email ready to send.
type Message struct {
	To      string
	Subject string
	Plain   string
	HTML    string
}

// TimeToTake renders the reminder sent when a schedule fires.
func TimeToTake(to, baseURL, medName, timeOfDay string) Message {
	name, link, at := html.EscapeString(medName), html.EscapeString(baseURL), html.EscapeString(timeOfDay)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("⏰ Reminder: Time to take %s", medName),
		Plain: fmt.Sprintf("Hello!\n\nIt's %s — time to take %s.\n\nPlease take your medication as scheduled.\n\nView My Pillbox: %s\n\n---\nPillulu Health Assistant (This reminder is for reference only, not medical advice)",
			timeOfDay, medName, baseURL),
		HTML: fmt.Sprintf(`<p>Hello!</p>
<p><strong>It's %s — time to take %s.</strong></p>
<p>Please take your medication as scheduled.</p>
<p><a href="%s">View My Pillbox</a></p>
<hr>
<p style="font-size:12px;color:#666;">Pillulu Health Assistant — This reminder is for reference only, not medical advice</p>
`, at, name, link),
	}
}

// LowStock renders the daily low-stock alert.
func LowStock(to, baseURL, medName string, stockCount, threshold int) Message {
	name, link := html.EscapeString(medName), html.EscapeString(baseURL)
	return Message{
		To:      to,
		Subject: fmt.Sprintf("⚠️ Low stock alert - %s", medName),
		Plain: fmt.Sprintf("Hello!\n\n%s is running low.\nCurrent stock: %d\nAlert threshold: %d\n\nPlease restock soon.\n\nView My Pillbox: %s\n\n---\nPillulu Health Assistant",
			medName, stockCount, threshold, baseURL),
		HTML: fmt.Sprintf(`<p>Hello!</p>
<p><strong>%s is running low</strong></p>
<p>Current stock: <strong>%d</strong></p>
<p>Alert threshold: %d</p>
<p>Please restock soon.</p>
<p><a href="%s">View My Pillbox</a></p>
<hr>
<p style="font-size:12px;color:#666;">Pillulu Health Assistant</p>
`, name, stockCount, threshold, link),
	}
}
