package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xraph/daftar/types"
	"github.com/xraph/daftar/zatca"
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Encode an invoice summary as a tax QR payload",
	Example: `  daftar qr --seller "مكتب" --vat 300000000000003 --total 1150 --vat-amount 150 --out qr.png`,
	RunE: runQR,
}

func init() {
	rootCmd.AddCommand(qrCmd)

	qrCmd.Flags().String("seller", "", "Seller name (default: DAFTAR_SELLER_NAME)")
	qrCmd.Flags().String("vat", "", "Seller VAT number (default: DAFTAR_SELLER_VAT)")
	qrCmd.Flags().String("total", "", "Invoice total including VAT, in SAR")
	qrCmd.Flags().String("vat-amount", "", "VAT amount, in SAR")
	qrCmd.Flags().String("time", "", "Invoice timestamp in RFC 3339 (default: now)")
	qrCmd.Flags().String("out", "", "Write a PNG image to this path")
	qrCmd.Flags().Int("size", zatca.DefaultSize, "PNG edge in pixels")
	_ = qrCmd.MarkFlagRequired("total")
	_ = qrCmd.MarkFlagRequired("vat-amount")
}

func runQR(cmd *cobra.Command, _ []string) error {
	seller, _ := cmd.Flags().GetString("seller")
	vat, _ := cmd.Flags().GetString("vat")
	totalStr, _ := cmd.Flags().GetString("total")
	vatStr, _ := cmd.Flags().GetString("vat-amount")
	timeStr, _ := cmd.Flags().GetString("time")
	out, _ := cmd.Flags().GetString("out")
	size, _ := cmd.Flags().GetInt("size")

	if seller == "" && appConfig != nil {
		seller = appConfig.SellerName
	}
	if vat == "" && appConfig != nil {
		vat = appConfig.SellerVAT
	}

	total, err := types.ParseMoney(totalStr, types.DefaultCurrency)
	if err != nil {
		return fmt.Errorf("--total: %w", err)
	}
	vatAmount, err := types.ParseMoney(vatStr, types.DefaultCurrency)
	if err != nil {
		return fmt.Errorf("--vat-amount: %w", err)
	}
	ts := time.Now()
	if timeStr != "" {
		if ts, err = time.Parse(time.RFC3339, timeStr); err != nil {
			return fmt.Errorf("--time: %w", err)
		}
	}

	payload, err := zatca.Encode(zatca.Payload{
		SellerName:   seller,
		VATNumber:    vat,
		Timestamp:    ts,
		InvoiceTotal: total,
		VATAmount:    vatAmount,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), payload)

	if out == "" {
		return nil
	}
	png, err := zatca.PNG(payload, size)
	if err != nil {
		return err
	}
	return os.WriteFile(out, png, 0o644)
}
