/*
Package invoicesdk is a Go client for the invoicer service.

# SDKClient vs Session

SDKClient covers the public endpoints and opens sessions:

	client := invoicesdk.NewSDKClient("http://localhost:8080")

	err := client.Register(ctx, invoicesdk.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Abcdef1!",
		Name:     "Alice",
	})

	session, err := client.Login(ctx, "alice@example.com", "Abcdef1!")

A Session carries the access and refresh tokens. It refreshes the access
token shortly before it expires, so callers never handle token lifetimes:

	c, err := session.CreateClient(ctx, invoicesdk.CreateClientRequest{
		Name:  "Acme",
		Email: "billing@acme.test",
	})

	inv, err := session.CreateInvoice(ctx, invoicesdk.CreateInvoiceRequest{
		ClientID: c.ID,
		Amount:   1250.50,
		DueDate:  invoicesdk.String("2025-01-31"),
	})

	invoices, err := session.ListInvoices(ctx, &c.ID)

Partial updates only send the fields that are set:

	inv, err = session.UpdateInvoice(ctx, inv.ID, invoicesdk.UpdateInvoiceRequest{
		Status:       invoicesdk.String("paid"),
		ClearDueDate: true,
	})

Logout revokes the current access token only:

	err = session.Logout(ctx)

# Errors

Every non-2xx response becomes an *APIError holding the status code and the
server's message. IsNotFound, IsUnauthorized and IsConflict cover the common
checks. Resources belonging to other users are reported as not found.
*/
package invoicesdk
