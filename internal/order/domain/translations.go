package domain

// Spanish labels for the translated order representation.

var orderStatusES = map[OrderStatus]string{
	StatusCreated:         "Creada",
	StatusPaymentReceived: "Pago recibido",
	StatusInvoiced:        "Facturada",
	StatusReturned:        "Devuelta",
	StatusCancelled:       "Cancelada",
}

var sourceChannelES = map[SourceChannel]string{
	ChannelEcommerce:  "Comercio electrónico",
	ChannelCallCenter: "Centro de llamadas",
	ChannelStore:      "Local comercial",
	ChannelAffiliate:  "Filial",
}

// Translate returns the Spanish label for the status, or the enum name
// when no translation is registered.
func (s OrderStatus) Translate() string {
	if t, ok := orderStatusES[s]; ok {
		return t
	}
	return string(s)
}

// Translate returns the Spanish label for the channel, or the enum name
// when no translation is registered.
func (c SourceChannel) Translate() string {
	if t, ok := sourceChannelES[c]; ok {
		return t
	}
	return string(c)
}
