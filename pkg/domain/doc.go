// Package domain contains the core data model for USSD interactions:
// the menu graph (Menu, Page, Option), the per-subscriber Session with
// its typed data bag, and the request/response/step-result shapes that
// cross the engine boundary.
//
// Types here are pure data. Behavior lives in internal/runtime (the
// navigation engine) and in the adapters.
package domain
