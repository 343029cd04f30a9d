// Package stepper drives sealed simulations through discrete timesteps.
//
// The driver consumes only the dispatch contract of the simulation core:
// it calls ConstrainValues/ConstrainRates/Synchronize/DampenRates at fixed
// stage boundaries and ApplyCallbacks once per completed step. It never
// mutates operator lists, so every step applies operators in the same
// sorted order.
package stepper
