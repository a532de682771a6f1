package geom

// Unit names accepted for the translation components of a raw
// transform.
const (
	UnitEMU   = "EMU"
	UnitPoint = "PT"
)

// Raw is the wire form of a transform as read from the presentation
// service. The service omits fields whose value is algebraically
// zero, so absence is significant: a transform for a 270° rotation
// arrives with no scaleX at all, and defaulting it to 1 corrupts the
// decomposition.
type Raw struct {
	ScaleX     *float64 `json:"scaleX,omitempty"`
	ShearX     *float64 `json:"shearX,omitempty"`
	ShearY     *float64 `json:"shearY,omitempty"`
	ScaleY     *float64 `json:"scaleY,omitempty"`
	TranslateX *float64 `json:"translateX,omitempty"`
	TranslateY *float64 `json:"translateY,omitempty"`
	Unit       string   `json:"unit,omitempty"`
}

// IsZero reports whether no field of the raw transform is present.
func (r Raw) IsZero() bool {
	return r.ScaleX == nil && r.ShearX == nil && r.ShearY == nil &&
		r.ScaleY == nil && r.TranslateX == nil && r.TranslateY == nil
}

// FromRaw resolves a raw transform into an Affine with point-valued
// translation. A fully absent transform is the identity; once any
// field is present, absent fields default to 0, never to 1.
func FromRaw(r Raw) Affine {
	if r.IsZero() {
		return Identity()
	}
	a := Affine{
		ScaleX:     deref(r.ScaleX),
		ShearX:     deref(r.ShearX),
		ShearY:     deref(r.ShearY),
		ScaleY:     deref(r.ScaleY),
		TranslateX: deref(r.TranslateX),
		TranslateY: deref(r.TranslateY),
	}
	if r.Unit == UnitEMU {
		a = a.ScaleTranslation(1 / EMUPerPoint)
	}
	return a
}

// ToRaw converts an Affine back to the wire form, emitting the
// translation in the requested unit. All fields are written
// explicitly; the batch-apply service treats absent fields as zero
// the same way FromRaw does.
func ToRaw(a Affine, unit string) Raw {
	if unit == UnitEMU {
		a = a.ScaleTranslation(EMUPerPoint)
	}
	return Raw{
		ScaleX:     ptr(a.ScaleX),
		ShearX:     ptr(a.ShearX),
		ShearY:     ptr(a.ShearY),
		ScaleY:     ptr(a.ScaleY),
		TranslateX: ptr(a.TranslateX),
		TranslateY: ptr(a.TranslateY),
		Unit:       unit,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptr(v float64) *float64 { return &v }
