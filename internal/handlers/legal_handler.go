package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const legalStyle = `<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>`

type LegalHandler struct {
	appName      string
	contactEmail string
}

func NewLegalHandler(appName, contactEmail string) *LegalHandler {
	return &LegalHandler{appName: appName, contactEmail: contactEmail}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ` + h.appName + `</title>
` + legalStyle + `
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: October 2026</p>
<h2>Information We Collect</h2>
<p>Your account details (name, email address, phone number) come from our sign-in provider. If you register as a donor we also store your blood type, donation history, location and any medical notes you choose to add.</p>
<h2>How We Use Your Information</h2>
<p>Donor data is used to match donors with blood requests near them. Only you can change or delete your donor profile. Registry administrators can search profiles by blood type and location.</p>
<h2>Medical Data</h2>
<p>Medical notes are optional and free text. Do not include information you are not comfortable sharing with registry administrators.</p>
<h2>Data Storage</h2>
<p>Your data is stored on encrypted servers. We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>Deleting your account with our sign-in provider deactivates it here. You can delete your donor profile at any time.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at ` + h.contactEmail + `</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ` + h.appName + `</title>
` + legalStyle + `
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: October 2026</p>
<h2>Acceptance</h2>
<p>By using ` + h.appName + `, you agree to these terms.</p>
<h2>Donor Information</h2>
<p>You are responsible for keeping your blood type and donation history accurate. Registration does not guarantee eligibility to donate; eligibility is decided at the point of donation.</p>
<h2>Termination</h2>
<p>We may suspend accounts that submit false donor information.</p>
<h2>Contact</h2>
<p>Questions about these terms: ` + h.contactEmail + `</p>
</body></html>`)
}
