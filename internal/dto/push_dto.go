package dto

// SubscribeRequest mirrors the PushSubscription JSON the browser hands
// to the service worker API.
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

type VapidKeyResponse struct {
	PublicKey string `json:"publicKey"`
}
