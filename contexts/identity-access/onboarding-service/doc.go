// Package onboardingservice owns account creation flows that must write to
// the external identity provider and the local profile store as one logical
// unit. Both flows run as sagas: forward steps execute strictly in order and
// a later step's failure compensates the earlier writes in reverse.
package onboardingservice
