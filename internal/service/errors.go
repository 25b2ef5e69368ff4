package service

import "errors"

// Auth and account errors.
var (
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrEmailNotRegistered = errors.New("email tidak terdaftar")
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrWeakPassword       = errors.New("password terlalu lemah")
	ErrInvalidEmail       = errors.New("format email tidak valid")
	ErrUserNotFound       = errors.New("pengguna tidak ditemukan")
	ErrRoleInvalid        = errors.New("role tidak dikenal")
)

// OTP errors.
var (
	ErrResetCodeInvalid   = errors.New("kode OTP salah")
	ErrResetCodeExpired   = errors.New("kode OTP sudah kedaluwarsa")
	ErrResetCodeRateLimit = errors.New("permintaan kode OTP terlalu sering")
	ErrResetCodeConsumed  = errors.New("kode OTP sudah dipakai")
	ErrPasswordMismatch   = errors.New("konfirmasi password tidak cocok")
)

// Catalog errors.
var (
	ErrCategoryNotFound = errors.New("kategori tidak ditemukan")
	ErrCategoryInUse    = errors.New("kategori masih dipakai produk")
	ErrProductNotFound  = errors.New("produk tidak ditemukan")
	ErrProductInactive  = errors.New("produk tidak tersedia")
	ErrSlugTaken        = errors.New("slug sudah dipakai")
)

// Cart and order errors.
var (
	ErrCartEmpty           = errors.New("keranjang kosong")
	ErrQuantityInvalid     = errors.New("jumlah tidak valid")
	ErrStockInsufficient   = errors.New("stok tidak mencukupi")
	ErrOrderNotFound       = errors.New("pesanan tidak ditemukan")
	ErrOrderStatusInvalid  = errors.New("status pesanan tidak mengizinkan aksi ini")
	ErrShippingRateInvalid = errors.New("tarif pengiriman tidak valid")
)

// Payment errors.
var (
	ErrPaymentTokenUnavailable = errors.New("token pembayaran tidak dapat dibuat")
	ErrWebhookSignature        = errors.New("signature webhook tidak valid")
	ErrWebhookOrderUnknown     = errors.New("order webhook tidak dikenal")
)

// Shipment errors.
var (
	ErrShipmentNotFound       = errors.New("pengiriman tidak ditemukan")
	ErrResiAlreadyIssued      = errors.New("resi sudah diterbitkan")
	ErrDestinationIncomplete  = errors.New("alamat tujuan belum lengkap")
	ErrWarehouseNotConfigured = errors.New("alamat gudang belum dikonfigurasi")
	ErrLabelIssueFailed       = errors.New("penerbitan resi gagal")
)

// Email errors.
var (
	ErrEmailServiceDisabled      = errors.New("layanan email dinonaktifkan")
	ErrEmailServiceNotConfigured = errors.New("layanan email belum dikonfigurasi")
	ErrEmailRecipientRejected    = errors.New("alamat email penerima ditolak")
)
