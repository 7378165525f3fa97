/*
Package ussd drives menu-based text interactions for USSD-style
sessions. A gateway posts the subscriber's latest keystroke plus a
session identifier; the engine decides what screen to show next, runs
any attached business action, and returns a short text reply plus a
continue/end flag.

The module is organized hexagonally: the menu graph and session model
live in pkg/domain, the collaborator contracts (session store, action
handler) in pkg/ports, and concrete adapters (in-memory store, Redis
store, HTTP gateway binding) in their own packages. The navigation
engine itself sits behind this facade.

# Usage

Build a menu, register handlers, create the app, and feed it requests:

	menu, err := builder.New("bank").
		Root("main").
		Page("main", "Welcome to Demo Bank").
		Option("1", "Check Balance").Action("balance").
		Option("2", "Transfer Money").GoTo("transfer").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	reg := registry.New()
	reg.MustRegister(balanceHandler{})

	app := ussd.New(menu, reg,
		ussd.WithSessionTTL(2*time.Minute),
		ussd.WithResumption(),
	)

	resp, err := app.HandleRequest(ctx, ussd.Request{
		SessionID:  "abc-123",
		Msisdn:     "233241234567",
		NewSession: true,
	})

Each request is processed synchronously start to finish against one
session loaded at the top and persisted (with a refreshed TTL) at the
bottom. Distinct sessions are embarrassingly parallel; requests for the
same session ID are assumed serialized by the gateway.
*/
package ussd
