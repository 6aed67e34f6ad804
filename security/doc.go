// Package security builds the TLS settings for serving the API over HTTPS,
// optionally requiring client certificates.
//
//	server:
//	  tls:
//	    cert_file: /etc/flairscribe/tls.crt
//	    key_file: /etc/flairscribe/tls.key
//	    client_ca_file: /etc/flairscribe/clients.pem
package security
