package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceTag identifies one offered service from the directory taxonomy.
type ServiceTag string

// Documentation & legal.
const (
	ServiceDeathCertificate  ServiceTag = "death_certificate"
	ServiceDeathRegistration ServiceTag = "death_registration"
	ServicePermits           ServiceTag = "permits"
	ServiceFuneralAid        ServiceTag = "funeral_aid"
)

// Body care & storage.
const (
	ServiceEmbalming       ServiceTag = "embalming"
	ServiceBodyPreparation ServiceTag = "body_preparation"
	ServiceRefrigeration   ServiceTag = "refrigeration"
)

// Transport & logistics.
const (
	ServiceTransport     ServiceTag = "transport"
	ServiceTransportLong ServiceTag = "transport_long"
	ServiceRepatriation  ServiceTag = "repatriation"
	ServicePallbearers   ServiceTag = "pallbearers"
)

// Products.
const (
	ServiceCoffins  ServiceTag = "coffins"
	ServiceUrns     ServiceTag = "urns"
	ServiceTextiles ServiceTag = "textiles"
	ServiceCrosses  ServiceTag = "crosses"
)

// Ritual essentials.
const (
	ServiceColiva          ServiceTag = "coliva"
	ServiceLiturgicalItems ServiceTag = "liturgical_items"
	ServiceMourningItems   ServiceTag = "mourning_items"
)

// Ceremony & venue.
const (
	ServiceWakeHouse     ServiceTag = "wake_house"
	ServiceChurchService ServiceTag = "church_service"
	ServiceFlowers       ServiceTag = "flowers"
	ServiceMusic         ServiceTag = "music"
)

// Catering & alms.
const (
	ServiceFoodPackages     ServiceTag = "food_packages"
	ServiceCatering         ServiceTag = "catering"
	ServiceRestaurant       ServiceTag = "restaurant"
	ServiceMemorialServices ServiceTag = "memorial_services"
)

// Cemetery works.
const (
	ServiceMonuments     ServiceTag = "monuments"
	ServiceCrypts        ServiceTag = "crypts"
	ServicePhotoCeramics ServiceTag = "photo_ceramics"
)

// Legacy tags still present in older imports.
const (
	ServiceCremation   ServiceTag = "cremation"
	ServiceBureaucracy ServiceTag = "bureaucracy"
	ServiceReligious   ServiceTag = "religious"
)

// Label is the display text of a tag in Romanian and English.
type Label struct {
	RO string `json:"ro"`
	EN string `json:"en"`
}

var serviceLabels = map[ServiceTag]Label{
	ServiceDeathCertificate:  {RO: "Constatare Deces", EN: "Death Confirmation"},
	ServiceDeathRegistration: {RO: "Certificat Deces (Primărie)", EN: "Death Registration"},
	ServicePermits:           {RO: "Autorizații (Sanepid/Îngropare)", EN: "Burial Permits"},
	ServiceFuneralAid:        {RO: "Dosar Ajutor Înmormântare", EN: "Funeral Aid Filing"},
	ServiceEmbalming:         {RO: "Îmbălsămare / Tanatopraxy", EN: "Embalming"},
	ServiceBodyPreparation:   {RO: "Toaletă și Îmbrăcare", EN: "Body Preparation"},
	ServiceRefrigeration:     {RO: "Frigider Mortuar", EN: "Refrigeration"},
	ServiceTransport:         {RO: "Transport Funerar Local", EN: "Local Funeral Transport"},
	ServiceTransportLong:     {RO: "Transport Distanță Lungă", EN: "Long Distance Transport"},
	ServiceRepatriation:      {RO: "Repatriere Internațională", EN: "International Repatriation"},
	ServicePallbearers:       {RO: "Echipă Purtători Sicriu", EN: "Pallbearers Team"},
	ServiceCoffins:           {RO: "Sicrie", EN: "Coffins"},
	ServiceUrns:              {RO: "Urne Cremație", EN: "Cremation Urns"},
	ServiceTextiles:          {RO: "Textile Funerare", EN: "Funeral Textiles"},
	ServiceCrosses:           {RO: "Cruci de Lemn", EN: "Wooden Crosses"},
	ServiceColiva:            {RO: "Colivă și Colaci", EN: "Ritual Foods"},
	ServiceLiturgicalItems:   {RO: "Articole Liturgice", EN: "Liturgical Items"},
	ServiceMourningItems:     {RO: "Lumânări, Icoane, Batiste", EN: "Mourning Items"},
	ServiceWakeHouse:         {RO: "Capelă / Cameră Mortuară", EN: "Wake House/Chapel"},
	ServiceChurchService:     {RO: "Serviciu la Biserică", EN: "Church Service"},
	ServiceFlowers:           {RO: "Coroane și Flori", EN: "Wreaths & Flowers"},
	ServiceMusic:             {RO: "Cor / Fanfară", EN: "Choir/Band"},
	ServiceFoodPackages:      {RO: "Pachete Pomană", EN: "Alms Packages"},
	ServiceCatering:          {RO: "Catering Praznic", EN: "Memorial Catering"},
	ServiceRestaurant:        {RO: "Rezervare Restaurant", EN: "Restaurant Booking"},
	ServiceMemorialServices:  {RO: "Parastase (40 zile, 1 an)", EN: "Memorial Services"},
	ServiceMonuments:         {RO: "Monumente Funerare", EN: "Monuments"},
	ServiceCrypts:            {RO: "Cripte și Cavouri", EN: "Crypts & Vaults"},
	ServicePhotoCeramics:     {RO: "Fotografii Ceramice", EN: "Photo Ceramics"},
	ServiceCremation:         {RO: "Incinerare", EN: "Cremation"},
	ServiceBureaucracy:       {RO: "Acte / Formalități", EN: "Paperwork"},
	ServiceReligious:         {RO: "Servicii Religioase", EN: "Religious Services"},
}

// Valid reports whether the tag belongs to the known taxonomy.
func (t ServiceTag) Valid() bool {
	_, ok := serviceLabels[t]
	return ok
}

// Label returns the display labels of the tag. Unknown tags are labelled with their raw value.
func (t ServiceTag) Label() Label {
	if label, ok := serviceLabels[t]; ok {
		return label
	}
	return Label{RO: string(t), EN: string(t)}
}

// Service tags one offered service of a company.
type Service struct {
	ID         uuid.UUID  `json:"id"`
	CompanyID  uuid.UUID  `json:"company_id"`
	ServiceTag ServiceTag `json:"service_tag"`
	CreatedAt  time.Time  `json:"created_at"`
}
