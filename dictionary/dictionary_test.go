package dictionary_test

import (
	"testing"

	"github.com/andrewz1/radius/dictionary"
)

func TestAddAttributeRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	if err := d.AddAttribute(&dictionary.Descriptor{Name: "User-Name", TypeCode: 1, VendorID: dictionary.NoVendor, Kind: dictionary.KindString}); err != nil {
		t.Fatalf("AddAttribute: %v", err)
	}
	err := d.AddAttribute(&dictionary.Descriptor{Name: "User-Name", TypeCode: 2, VendorID: dictionary.NoVendor, Kind: dictionary.KindString})
	if err == nil {
		t.Fatal("expected ErrDuplicateName")
	}
}

func TestAddAttributeRejectsDuplicateCode(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	if err := d.AddAttribute(&dictionary.Descriptor{Name: "A", TypeCode: 1, VendorID: dictionary.NoVendor, Kind: dictionary.KindString}); err != nil {
		t.Fatalf("AddAttribute: %v", err)
	}
	err := d.AddAttribute(&dictionary.Descriptor{Name: "B", TypeCode: 1, VendorID: dictionary.NoVendor, Kind: dictionary.KindString})
	if err == nil {
		t.Fatal("expected ErrDuplicateCode")
	}
}

func TestAddAttributeRejectsNegativeVendorID(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	err := d.AddAttribute(&dictionary.Descriptor{Name: "Bad", TypeCode: 1, VendorID: -7, Kind: dictionary.KindString})
	if err == nil {
		t.Fatal("expected ErrInvalidVendorID")
	}
}

func TestAttributeByCodeAndByName(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	desc := &dictionary.Descriptor{Name: "Filter-Id", TypeCode: 11, VendorID: dictionary.NoVendor, Kind: dictionary.KindString}
	if err := d.AddAttribute(desc); err != nil {
		t.Fatalf("AddAttribute: %v", err)
	}

	got, ok := d.AttributeByCode(dictionary.NoVendor, 11)
	if !ok || got.Name != "Filter-Id" {
		t.Fatalf("AttributeByCode(NoVendor, 11) = %v, %v", got, ok)
	}
	got2, ok := d.AttributeByName("Filter-Id")
	if !ok || got2.TypeCode != 11 {
		t.Fatalf("AttributeByName(Filter-Id) = %v, %v", got2, ok)
	}
	if _, ok := d.AttributeByCode(dictionary.NoVendor, 250); ok {
		t.Fatal("AttributeByCode found a descriptor for an unregistered code")
	}
}

func TestAddEnumRoundTrip(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	desc := &dictionary.Descriptor{Name: "Service-Type", TypeCode: 6, VendorID: dictionary.NoVendor, Kind: dictionary.KindInteger}
	if err := d.AddAttribute(desc); err != nil {
		t.Fatalf("AddAttribute: %v", err)
	}
	if err := d.AddEnum("Service-Type", "Login-User", 1); err != nil {
		t.Fatalf("AddEnum: %v", err)
	}

	name, ok := desc.EnumName(1)
	if !ok || name != "Login-User" {
		t.Fatalf("EnumName(1) = %q, %v", name, ok)
	}
	value, ok := desc.EnumValue("Login-User")
	if !ok || value != 1 {
		t.Fatalf("EnumValue(Login-User) = %d, %v", value, ok)
	}
}

func TestAddEnumRejectsUnknownAttribute(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	if err := d.AddEnum("No-Such-Attribute", "x", 1); err == nil {
		t.Fatal("expected ErrUnknownName")
	}
}

func TestAddVendorRegistersBothDirections(t *testing.T) {
	t.Parallel()

	d := dictionary.New()
	if err := d.AddVendor(9, "Cisco"); err != nil {
		t.Fatalf("AddVendor: %v", err)
	}
	if name, ok := d.VendorName(9); !ok || name != "Cisco" {
		t.Fatalf("VendorName(9) = %q, %v", name, ok)
	}
	if id := d.VendorID("Cisco"); id != 9 {
		t.Fatalf("VendorID(Cisco) = %d, want 9", id)
	}
	if id := d.VendorID("Nonexistent"); id != dictionary.NoVendor {
		t.Fatalf("VendorID(Nonexistent) = %d, want NoVendor", id)
	}
}

func TestDefaultDictionaryParsesAndIsShared(t *testing.T) {
	t.Parallel()

	d1 := dictionary.Default()
	d2 := dictionary.Default()
	if d1 != d2 {
		t.Fatal("Default() must return the same process-wide instance on every call")
	}
	if _, ok := d1.AttributeByName("User-Name"); !ok {
		t.Fatal("bundled default dictionary is missing User-Name")
	}
}
